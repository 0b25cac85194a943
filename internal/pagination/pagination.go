package pagination

import "strconv"

// DefaultPageSize is used when no size is configured.
const DefaultPageSize = 10

// Page is one slice of an ordered collection plus the metadata listing
// templates need.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Number     int  `json:"number"`
	Size       int  `json:"size"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_previous"`
}

// Paginate splits items into fixed-size pages and returns the requested one.
// Page numbers below 1 clamp to the first page, numbers past the end clamp to
// the last page; an out-of-range request is never an error. An empty
// collection yields page 1 of 1 with no items.
func Paginate[T any](items []T, number, size int) *Page[T] {
	if size < 1 {
		size = DefaultPageSize
	}
	if number < 1 {
		number = 1
	}

	total := len(items)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &Page[T]{
		Items:      items[start:end],
		Number:     number,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    number < totalPages,
		HasPrev:    number > 1,
	}
}

// ParsePage turns a ?page= query value into a page number. Anything that is
// not a positive integer means page 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
