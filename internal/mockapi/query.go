package mockapi

import (
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10

	// AllCategories disables the product category filter.
	AllCategories = "All Items"
)

// ListQuery carries the list filters. Page and Limit only apply to
// customers; zero or negative values fall back to the defaults.
type ListQuery struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

func (q ListQuery) needle() string {
	return strings.ToLower(strings.TrimSpace(q.Search))
}

func containsFold(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// paginate slices a 1-based page. A page past the end is empty, not an error.
func paginate[T any](items []T, page, limit int) ([]T, PageMeta) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	total := len(items)
	meta := PageMeta{Total: total, Page: page, Limit: limit}
	if total > 0 {
		meta.TotalPages = (total-1)/limit + 1
	}

	if page > meta.TotalPages {
		return []T{}, meta
	}
	start := (page - 1) * limit
	end := min(start+limit, total)
	return items[start:end], meta
}
