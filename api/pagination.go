package api

import (
	"net/url"
	"strconv"
)

const DefaultPerPage = 100

// ListParams selects one page of a collection.
type ListParams struct {
	Page    int // 1-based; zero means the first page
	PerPage int // zero means DefaultPerPage
}

func (p *ListParams) values() url.Values {
	v := make(url.Values)

	page, perPage := 1, DefaultPerPage
	if p != nil {
		if p.Page > 0 {
			page = p.Page
		}
		if p.PerPage > 0 {
			perPage = p.PerPage
		}
	}

	v.Set("page", strconv.Itoa(page))
	v.Set("per_page", strconv.Itoa(perPage))

	return v
}

// Page is one page of results plus the collection's pagination state.
type Page[T any] struct {
	Records     []T
	TotalCount  int
	TotalPages  int
	CurrentPage int
	PerPage     int
}

func (p *Page[T]) HasMore() bool {
	return p.CurrentPage < p.TotalPages
}

// pageMeta mirrors the wire-level pagination fields next to each
// collection key.
type pageMeta struct {
	TotalCount  int `json:"total_count"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
}
