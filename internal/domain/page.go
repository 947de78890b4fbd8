package domain

// Page is one page of a paginated list response
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// TotalPages returns ceil(total / pageSize), or 0 when pageSize is not positive
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Normalize recomputes TotalPages and trims Items to PageSize so the page
// invariants hold regardless of what the server sent.
func (p Page[T]) Normalize() Page[T] {
	p.TotalPages = TotalPages(p.Total, p.PageSize)
	if p.PageSize > 0 && len(p.Items) > p.PageSize {
		p.Items = p.Items[:p.PageSize]
	}
	if p.Items == nil {
		p.Items = []T{}
	}
	return p
}

// HasNext reports whether a page follows this one
func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

// HasPrev reports whether a page precedes this one
func (p Page[T]) HasPrev() bool {
	return p.Page > 1
}

// Empty reports whether the page carries no items
func (p Page[T]) Empty() bool {
	return len(p.Items) == 0
}
