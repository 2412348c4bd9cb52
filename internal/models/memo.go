package models

import "time"

// DefaultCategory is the category the memos table assigns when none is given.
const DefaultCategory = "personal"

// CategoryAll is the pseudo-category that disables category filtering.
const CategoryAll = "all"

type Memo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MemoInput is the form-data shape accepted by create and update.
type MemoInput struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// Normalize returns a copy with nil tags replaced by an empty slice, so
// callers never see absent tags. Category is left empty here: create relies
// on the storage default instead.
func (in MemoInput) Normalize() MemoInput {
	if in.Tags == nil {
		in.Tags = []string{}
	}
	return in
}
