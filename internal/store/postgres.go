package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tkoide/memopad/internal/database"
	"github.com/tkoide/memopad/internal/models"
)

const memoColumns = "id, title, content, category, tags, created_at, updated_at"

// PostgresStore implements MemoStore against the memos table.
type PostgresStore struct {
	db *database.DB
}

func NewPostgres(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]models.Memo, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT `+memoColumns+` FROM memos ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list memos: %w", err)
	}
	defer rows.Close()

	return scanMemos(rows)
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (*models.Memo, error) {
	memo := &models.Memo{}
	err := s.db.Pool.QueryRow(ctx,
		`SELECT `+memoColumns+` FROM memos WHERE id = $1`, id,
	).Scan(&memo.ID, &memo.Title, &memo.Content, &memo.Category, &memo.Tags,
		&memo.CreatedAt, &memo.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get memo %s: %w", id, err)
	}
	normalizeTags(memo)
	return memo, nil
}

func (s *PostgresStore) Create(ctx context.Context, in models.MemoInput) (*models.Memo, error) {
	in = in.Normalize()

	// Omit the category column when unset so the table default applies.
	query := `INSERT INTO memos (title, content, category, tags) VALUES ($1, $2, $3, $4)
		 RETURNING ` + memoColumns
	args := []any{in.Title, in.Content, in.Category, in.Tags}
	if in.Category == "" {
		query = `INSERT INTO memos (title, content, tags) VALUES ($1, $2, $3)
			 RETURNING ` + memoColumns
		args = []any{in.Title, in.Content, in.Tags}
	}

	memo := &models.Memo{}
	err := s.db.Pool.QueryRow(ctx, query, args...).Scan(
		&memo.ID, &memo.Title, &memo.Content, &memo.Category, &memo.Tags,
		&memo.CreatedAt, &memo.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create memo: %w", err)
	}
	normalizeTags(memo)
	return memo, nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, in models.MemoInput) (*models.Memo, error) {
	in = in.Normalize()
	if in.Category == "" {
		in.Category = models.DefaultCategory
	}

	// updated_at is refreshed by the memos_updated_at trigger.
	memo := &models.Memo{}
	err := s.db.Pool.QueryRow(ctx,
		`UPDATE memos SET title = $1, content = $2, category = $3, tags = $4
		 WHERE id = $5
		 RETURNING `+memoColumns,
		in.Title, in.Content, in.Category, in.Tags, id,
	).Scan(&memo.ID, &memo.Title, &memo.Content, &memo.Category, &memo.Tags,
		&memo.CreatedAt, &memo.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update memo %s: %w", id, err)
	}
	normalizeTags(memo)
	return memo, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	// Deleting a missing id affects zero rows and still succeeds.
	if _, err := s.db.Pool.Exec(ctx, `DELETE FROM memos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete memo %s: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) Search(ctx context.Context, query string) ([]models.Memo, error) {
	// The needle is a bound value; tags are matched server-side via unnest
	// so a memo whose only match is in its tags is still returned.
	rows, err := s.db.Pool.Query(ctx,
		`SELECT `+memoColumns+` FROM memos
		 WHERE title ILIKE '%' || $1 || '%'
		    OR content ILIKE '%' || $1 || '%'
		    OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE '%' || $1 || '%')
		 ORDER BY created_at DESC`,
		query,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search memos: %w", err)
	}
	defer rows.Close()

	return scanMemos(rows)
}

func (s *PostgresStore) ListByCategory(ctx context.Context, category string) ([]models.Memo, error) {
	if category == models.CategoryAll {
		return s.ListAll(ctx)
	}

	rows, err := s.db.Pool.Query(ctx,
		`SELECT `+memoColumns+` FROM memos WHERE category = $1 ORDER BY created_at DESC`,
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list memos by category: %w", err)
	}
	defer rows.Close()

	return scanMemos(rows)
}

func scanMemos(rows pgx.Rows) ([]models.Memo, error) {
	memos := []models.Memo{}
	for rows.Next() {
		memo := models.Memo{}
		if err := rows.Scan(&memo.ID, &memo.Title, &memo.Content, &memo.Category,
			&memo.Tags, &memo.CreatedAt, &memo.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan memo: %w", err)
		}
		normalizeTags(&memo)
		memos = append(memos, memo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read memo rows: %w", err)
	}
	return memos, nil
}

// normalizeTags maps a NULL tags column to an empty slice at the boundary.
func normalizeTags(memo *models.Memo) {
	if memo.Tags == nil {
		memo.Tags = []string{}
	}
}
