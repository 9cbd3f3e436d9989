package dto

type Pagination[T any] struct {
	Items      []T `json:"items"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
}

// MapPagination converts a page of entities into a page of responses.
func MapPagination[E any, R any](items []E, totalItems, totalPages, pageNumber, pageSize int, fn func(*E) R) *Pagination[R] {
	out := make([]R, len(items))
	for i := range items {
		out[i] = fn(&items[i])
	}
	return &Pagination[R]{
		Items:      out,
		TotalItems: totalItems,
		TotalPages: totalPages,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}
}
