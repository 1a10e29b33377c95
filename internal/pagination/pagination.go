package pagination

import (
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPageNumber   = 1_000_000
)

// PageRequest holds pagination parameters parsed from query strings.
type PageRequest struct {
	PageNumber int `form:"pageNumber" binding:"omitempty,min=1,max=1000000"`
	PageSize   int `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// Defaults fills in default values when pageNumber or pageSize are not
// provided and clamps both into range so the offset never overflows.
func (p *PageRequest) Defaults() {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageNumber > MaxPageNumber {
		p.PageNumber = MaxPageNumber
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Offset returns the SQL OFFSET for the current page.
func (p *PageRequest) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// PageResponse is the list envelope returned by every collection endpoint.
type PageResponse[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
}

// NewPageResponse creates a PageResponse from the given items and total count.
func NewPageResponse[T any](items []T, pageNumber, pageSize int, totalCount int64) PageResponse[T] {
	if items == nil {
		items = []T{}
	}
	return PageResponse[T]{
		Items:      items,
		TotalCount: totalCount,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given page request.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}
