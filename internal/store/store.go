// Package store mediates all reads and writes of Memo entities. Every
// operation returns an explicit error so callers can tell a missing row
// from an unreachable backend and choose their own retry or surface policy.
package store

import (
	"context"
	"errors"

	"github.com/tkoide/memopad/internal/models"
)

// ErrNotFound is returned when no memo exists for the given id.
var ErrNotFound = errors.New("memo not found")

// MemoStore is the contract between application logic and persistent storage.
type MemoStore interface {
	// ListAll returns every memo, newest first.
	ListAll(ctx context.Context) ([]models.Memo, error)

	// GetByID returns the memo with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Memo, error)

	// Create inserts a memo. Storage assigns id and timestamps; an empty
	// category falls back to the storage default.
	Create(ctx context.Context, in models.MemoInput) (*models.Memo, error)

	// Update rewrites every field of an existing memo and returns the row
	// with its refreshed updated_at, or ErrNotFound.
	Update(ctx context.Context, id string, in models.MemoInput) (*models.Memo, error)

	// Delete removes a memo. Deleting an id that does not exist is a no-op
	// and reports success.
	Delete(ctx context.Context, id string) error

	// Search returns memos whose title, content, or any tag contains the
	// query case-insensitively, newest first.
	Search(ctx context.Context, query string) ([]models.Memo, error)

	// ListByCategory filters by category equality, newest first. The
	// pseudo-category "all" disables the filter.
	ListByCategory(ctx context.Context, category string) ([]models.Memo, error)
}
