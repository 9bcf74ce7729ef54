package models

import "math"

// PageRequest selects a zero-based page of a result set.
type PageRequest struct {
	Page int
	Size int
}

// Offset returns the number of rows skipped before the page. It saturates
// at math.MaxInt instead of wrapping for very large page numbers.
func (p PageRequest) Offset() int {
	if p.Size > 0 && p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Page is one slice of a paginated result with its metadata.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// NewPage wraps content with metadata derived from req and total.
func NewPage[T any](content []T, req PageRequest, total int64) *Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return &Page[T]{
		Content:       content,
		Number:        req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}
