package pagination

import (
	"github.com/SscSPs/workspace_chat_app/internal/apperrors"
	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Normalize fills in the default limit and caps oversized pages. A negative offset or
// a negative limit is rejected.
func Normalize(w domain.PageWindow) (domain.PageWindow, error) {
	if w.Offset < 0 {
		return w, apperrors.NewValidationFailedError("offset must not be negative")
	}
	if w.Limit < 0 {
		return w, apperrors.NewValidationFailedError("limit must not be negative")
	}
	if w.Limit == 0 {
		w.Limit = DefaultLimit
	}
	if w.Limit > MaxLimit {
		w.Limit = MaxLimit
	}
	return w, nil
}

// Slice applies a window to an in-memory result set.
func Slice[T any](items []T, w domain.PageWindow) []T {
	if w.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if w.Limit > 0 && w.Offset+w.Limit < end {
		end = w.Offset + w.Limit
	}
	return items[w.Offset:end]
}
