package domain

// Pagination defaults
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest is a 1-based page number with its size
type PageRequest struct {
	Page     int
	PageSize int
}

// NewPageRequest normalizes page and size, applying defaultSize when size is not positive
// and capping it at MaxPageSize
func NewPageRequest(page, size, defaultSize int) PageRequest {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if size <= 0 {
		size = defaultSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PageRequest{Page: page, PageSize: size}
}

// Offset returns the number of rows to skip
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Limit returns the maximum number of rows to return
func (p PageRequest) Limit() int {
	return p.PageSize
}

// LastPage returns the last valid page for count rows. An empty set still has page 1.
func (p PageRequest) LastPage(count int64) int {
	if count <= 0 {
		return 1
	}
	size := int64(p.PageSize)
	return int((count + size - 1) / size)
}

// Check returns ErrInvalidPage when the page lies outside [1, LastPage]
func (p PageRequest) Check(count int64) error {
	if p.Page < 1 || p.Page > p.LastPage(count) {
		return ErrInvalidPage
	}
	return nil
}

// Page is one page of results together with the total match count
type Page[T any] struct {
	Items    []T
	Count    int64
	Page     int
	PageSize int
}

// NewPage builds a Page from a request and its results
func NewPage[T any](req PageRequest, items []T, count int64) *Page[T] {
	return &Page[T]{Items: items, Count: count, Page: req.Page, PageSize: req.PageSize}
}

// HasNext reports whether rows exist past this page
func (p *Page[T]) HasNext() bool {
	return int64(p.Page)*int64(p.PageSize) < p.Count
}

// HasPrevious reports whether this page is not the first one
func (p *Page[T]) HasPrevious() bool {
	return p.Page > 1
}
