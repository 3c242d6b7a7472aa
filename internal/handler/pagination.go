package handler

import (
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
)

// Query parameters recognised by paginated lists
const (
	pageParam     = "page"
	pageSizeParam = "page_size"
)

// PaginatedResponse is the list envelope
type PaginatedResponse[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// pageRequest reads page and page_size from the query string.
// A page that is not a positive integer comes back as page 0, which PageRequest.Check
// rejects once the list scope has resolved. A malformed page_size falls back to defaultSize.
func pageRequest(c echo.Context, defaultSize int) domain.PageRequest {
	page := 1
	if raw := c.QueryParam(pageParam); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			n = 0
		}
		page = n
	}

	size, err := strconv.Atoi(c.QueryParam(pageSizeParam))
	if err != nil {
		size = 0
	}
	return domain.NewPageRequest(page, size, defaultSize)
}

// paginate wraps one page of items with absolute next/previous links
func paginate[S any, T any](c echo.Context, page *domain.Page[S], convert func(S) T) PaginatedResponse[T] {
	results := make([]T, 0, len(page.Items))
	for _, item := range page.Items {
		results = append(results, convert(item))
	}

	resp := PaginatedResponse[T]{Count: page.Count, Results: results}
	if page.HasNext() {
		next := pageURL(c, page.Page+1)
		resp.Next = &next
	}
	if page.HasPrevious() {
		prev := pageURL(c, page.Page-1)
		resp.Previous = &prev
	}
	return resp
}

// pageURL builds the absolute URL of another page, keeping the other query parameters.
// The first page is linked without a page parameter.
func pageURL(c echo.Context, page int) string {
	req := c.Request()
	query := req.URL.Query()
	if page <= 1 {
		query.Del(pageParam)
	} else {
		query.Set(pageParam, strconv.Itoa(page))
	}

	u := url.URL{
		Scheme:   c.Scheme(),
		Host:     req.Host,
		Path:     req.URL.Path,
		RawQuery: query.Encode(),
	}
	return u.String()
}
