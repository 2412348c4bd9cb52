package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tkoide/memopad/internal/models"
)

// MemoryStore is an in-memory MemoStore with the same semantics as the
// Postgres implementation. It backs tests and database-less runs.
type MemoryStore struct {
	mu    sync.RWMutex
	memos map[string]models.Memo
}

func NewMemory() *MemoryStore {
	return &MemoryStore{memos: make(map[string]models.Memo)}
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]models.Memo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	memos := make([]models.Memo, 0, len(s.memos))
	for _, memo := range s.memos {
		memos = append(memos, copyMemo(memo))
	}
	sortNewestFirst(memos)
	return memos, nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id string) (*models.Memo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	memo, ok := s.memos[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyMemo(memo)
	return &out, nil
}

func (s *MemoryStore) Create(ctx context.Context, in models.MemoInput) (*models.Memo, error) {
	in = in.Normalize()
	if in.Category == "" {
		in.Category = models.DefaultCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	memo := models.Memo{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Content:   in.Content,
		Category:  in.Category,
		Tags:      append([]string{}, in.Tags...),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.memos[memo.ID] = memo

	out := copyMemo(memo)
	return &out, nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, in models.MemoInput) (*models.Memo, error) {
	in = in.Normalize()
	if in.Category == "" {
		in.Category = models.DefaultCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	memo, ok := s.memos[id]
	if !ok {
		return nil, ErrNotFound
	}

	// The clock may not advance between calls; keep updated_at strictly
	// increasing the way a storage round trip would.
	now := time.Now()
	if !now.After(memo.UpdatedAt) {
		now = memo.UpdatedAt.Add(time.Nanosecond)
	}

	memo.Title = in.Title
	memo.Content = in.Content
	memo.Category = in.Category
	memo.Tags = append([]string{}, in.Tags...)
	memo.UpdatedAt = now
	s.memos[id] = memo

	out := copyMemo(memo)
	return &out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.memos, id)
	return nil
}

func (s *MemoryStore) Search(ctx context.Context, query string) ([]models.Memo, error) {
	needle := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	memos := []models.Memo{}
	for _, memo := range s.memos {
		if memoMatches(memo, needle) {
			memos = append(memos, copyMemo(memo))
		}
	}
	sortNewestFirst(memos)
	return memos, nil
}

func (s *MemoryStore) ListByCategory(ctx context.Context, category string) ([]models.Memo, error) {
	if category == models.CategoryAll {
		return s.ListAll(ctx)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	memos := []models.Memo{}
	for _, memo := range s.memos {
		if memo.Category == category {
			memos = append(memos, copyMemo(memo))
		}
	}
	sortNewestFirst(memos)
	return memos, nil
}

// memoMatches applies one predicate uniformly across title, content, and tags.
func memoMatches(memo models.Memo, needle string) bool {
	if strings.Contains(strings.ToLower(memo.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(memo.Content), needle) {
		return true
	}
	for _, tag := range memo.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func sortNewestFirst(memos []models.Memo) {
	sort.SliceStable(memos, func(i, j int) bool {
		return memos[i].CreatedAt.After(memos[j].CreatedAt)
	})
}

func copyMemo(memo models.Memo) models.Memo {
	memo.Tags = append([]string{}, memo.Tags...)
	return memo
}
