package dto

import "github.com/SscSPs/workspace_chat_app/internal/core/domain"

// PageQuery binds offset/limit query parameters. Limits above the maximum are capped
// by the pagination package, not rejected.
type PageQuery struct {
	Offset int `form:"offset,default=0" binding:"min=0"`
	Limit  int `form:"limit,default=20" binding:"min=1"`
}

// Window converts the bound query into a page window.
func (q PageQuery) Window() domain.PageWindow {
	return domain.PageWindow{Offset: q.Offset, Limit: q.Limit}
}

// Page is the envelope for every paged listing.
type Page[T any] struct {
	Data     []T `json:"data"`
	Total    int `json:"total"`
	PageNo   int `json:"pageNo"`
	PageSize int `json:"pageSize"`
}

// NewPage wraps one window of results.
func NewPage[T any](items []T, total int, window domain.PageWindow) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Data:     items,
		Total:    total,
		PageNo:   window.PageNo(),
		PageSize: window.Limit,
	}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
