package query

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination selects a 1-indexed page of a result set.
type Pagination struct {
	Page     int
	PageSize int
}

// NewPagination clamps page and size into their valid ranges.
func NewPagination(page, pageSize int) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func (p Pagination) Limit() int {
	return p.PageSize
}
