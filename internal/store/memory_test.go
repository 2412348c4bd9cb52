package store

import (
	"context"
	"testing"
	"time"

	"github.com/tkoide/memopad/internal/models"
)

func TestCreateThenGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	created, err := s.Create(ctx, models.MemoInput{
		Title:    "Buy milk",
		Content:  "at the store",
		Category: "todo",
		Tags:     []string{"errand"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected ID to be assigned")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}
	if created.UpdatedAt.Before(created.CreatedAt) {
		t.Fatal("expected created_at <= updated_at")
	}

	got, err := s.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Buy milk" || got.Content != "at the store" || got.Category != "todo" {
		t.Fatalf("unexpected memo after create: %+v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "errand" {
		t.Fatalf("unexpected tags: %v", got.Tags)
	}
}

func TestCreateDefaults(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	created, err := s.Create(ctx, models.MemoInput{Title: "x", Content: "y"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Category != models.DefaultCategory {
		t.Fatalf("expected category %q, got %q", models.DefaultCategory, got.Category)
	}
	if got.Tags == nil {
		t.Fatal("expected tags to be an empty slice, got nil")
	}
	if len(got.Tags) != 0 {
		t.Fatalf("expected no tags, got %v", got.Tags)
	}
}

func TestUpdateRefreshesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	created, err := s.Create(ctx, models.MemoInput{Title: "before", Content: "old"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := s.Update(ctx, created.ID, models.MemoInput{
		Title:    "after",
		Content:  "new",
		Category: "work",
		Tags:     []string{"a", "b"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("expected updated_at to advance: before=%v after=%v",
			created.UpdatedAt, updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("expected created_at to be immutable")
	}

	got, err := s.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Title != "after" || got.Content != "new" || got.Category != "work" {
		t.Fatalf("unexpected memo after update: %+v", got)
	}
	if len(got.Tags) != 2 {
		t.Fatalf("unexpected tags after update: %v", got.Tags)
	}
}

func TestUpdateMissing(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	_, err := s.Update(ctx, "0d6ec677-020c-4f7a-9cb3-18f54cb6af1c", models.MemoInput{Title: "t", Content: "c"})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteThenGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	created, err := s.Create(ctx, models.MemoInput{Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetByID(ctx, created.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting a missing id is a no-op success
	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete of missing id: %v", err)
	}
}

func TestListAllNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	for _, title := range []string{"first", "second", "third"} {
		if _, err := s.Create(ctx, models.MemoInput{Title: title, Content: "c"}); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
		time.Sleep(time.Millisecond)
	}

	memos, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(memos) != 3 {
		t.Fatalf("expected 3 memos, got %d", len(memos))
	}
	if memos[0].Title != "third" || memos[2].Title != "first" {
		t.Fatalf("expected newest first, got %q, %q, %q",
			memos[0].Title, memos[1].Title, memos[2].Title)
	}
	for i := 1; i < len(memos); i++ {
		if memos[i].CreatedAt.After(memos[i-1].CreatedAt) {
			t.Fatal("expected created_at descending")
		}
	}
}

func TestListByCategory(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	if _, err := s.Create(ctx, models.MemoInput{Title: "w", Content: "c", Category: "work"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Create(ctx, models.MemoInput{Title: "p", Content: "c"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	work, err := s.ListByCategory(ctx, "work")
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(work) != 1 || work[0].Title != "w" {
		t.Fatalf("unexpected work memos: %+v", work)
	}

	empty, err := s.ListByCategory(ctx, "travel")
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no travel memos, got %d", len(empty))
	}
}

func TestListByCategoryAll(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	for i := 0; i < 3; i++ {
		category := "work"
		if i == 1 {
			category = ""
		}
		if _, err := s.Create(ctx, models.MemoInput{Title: "t", Content: "c", Category: category}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	filtered, err := s.ListByCategory(ctx, models.CategoryAll)
	if err != nil {
		t.Fatalf("list by category all: %v", err)
	}

	if len(all) != len(filtered) {
		t.Fatalf("expected %d memos, got %d", len(all), len(filtered))
	}
	ids := make(map[string]bool, len(all))
	for _, memo := range all {
		ids[memo.ID] = true
	}
	for _, memo := range filtered {
		if !ids[memo.ID] {
			t.Fatalf("memo %s missing from unfiltered listing", memo.ID)
		}
	}
}

func TestSearchTitleAndContent(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	if _, err := s.Create(ctx, models.MemoInput{
		Title:    "Buy milk",
		Content:  "at the store",
		Category: "todo",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Create(ctx, models.MemoInput{Title: "other", Content: "nothing here"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Case-insensitive title match
	memos, err := s.Search(ctx, "MILK")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(memos) != 1 || memos[0].Title != "Buy milk" {
		t.Fatalf("expected title match, got %+v", memos)
	}

	// Content match
	memos, err = s.Search(ctx, "store")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(memos) != 1 || memos[0].Title != "Buy milk" {
		t.Fatalf("expected content match, got %+v", memos)
	}

	// No match
	memos, err = s.Search(ctx, "absent")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(memos) != 0 {
		t.Fatalf("expected no matches, got %+v", memos)
	}
}

// A memo whose only match is in its tags is returned: the search predicate
// covers title, content, and tags uniformly.
func TestSearchTagOnlyMatch(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	if _, err := s.Create(ctx, models.MemoInput{
		Title:   "x",
		Content: "y",
		Tags:    []string{"urgent"},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	memos, err := s.Search(ctx, "urgent")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(memos) != 1 {
		t.Fatalf("expected tag-only match to be returned, got %d results", len(memos))
	}

	// Substring and case-insensitive over tags too
	memos, err = s.Search(ctx, "URG")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(memos) != 1 {
		t.Fatalf("expected tag substring match, got %d results", len(memos))
	}
}

func TestGetMissing(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	if _, err := s.GetByID(ctx, "2f0e8f7c-54ec-4a5f-9d82-0cbb5d4b6a11"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
