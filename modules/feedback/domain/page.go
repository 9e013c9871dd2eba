package domain

import "math"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest selects one page of a listing. Page is zero-based.
type PageRequest struct {
	Page int
	Size int
}

func (p PageRequest) Validate() error {
	if p.Page < 0 {
		return ErrInvalidPage
	}
	if p.Size < 1 || p.Size > MaxPageSize {
		return ErrInvalidPageSize
	}
	return nil
}

// Offset is the index of the first element of the page.
// It saturates at math.MaxInt when Page*Size does not fit in an int.
func (p PageRequest) Offset() int {
	if p.Size > 0 && p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Page is one slice of a listing plus the totals needed to navigate it.
type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalElements int
}

// NewPage cuts the page described by req out of all.
func NewPage[T any](all []T, req PageRequest) Page[T] {
	content := []T{}
	if start := req.Offset(); req.Size > 0 && start >= 0 && start < len(all) {
		end := min(start+req.Size, len(all))
		content = append(content, all[start:end]...)
	}
	return Page[T]{
		Content:       content,
		Number:        req.Page,
		Size:          req.Size,
		TotalElements: len(all),
	}
}

func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return (p.TotalElements + p.Size - 1) / p.Size
}

func (p Page[T]) IsFirst() bool { return p.Number == 0 }

func (p Page[T]) IsLast() bool { return p.Number >= p.TotalPages()-1 }
