package orm

import (
	"strconv"

	"gorm.io/gorm"
)

const (
	DefaultPerPage = 30
	MaxPerPage     = 100
)

// Pagination describes one page of a collection.
type Pagination struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
}

// NewPagination clamps page and perPage and derives LastPage from total.
func NewPagination(page, perPage int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	last := int((total + int64(perPage) - 1) / int64(perPage))
	if last < 1 {
		last = 1
	}
	return Pagination{Total: total, PerPage: perPage, CurrentPage: page, LastPage: last}
}

// Offset is the number of rows before the current page. Pages past the
// last one share the offset just after it, so they load nothing and never
// overflow.
func (p Pagination) Offset() int {
	if p.CurrentPage > p.LastPage {
		return p.LastPage * p.PerPage
	}
	return (p.CurrentPage - 1) * p.PerPage
}

// Scope applies LIMIT/OFFSET for the page.
func (p Pagination) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.PerPage)
	}
}

// PageParams parses ?page= and ?per_page= query values. Invalid numbers fall
// back to the defaults.
func PageParams(page, perPage string) (int, int) {
	p, err := strconv.Atoi(page)
	if err != nil || p < 1 {
		p = 1
	}
	pp, err := strconv.Atoi(perPage)
	if err != nil || pp < 1 {
		pp = DefaultPerPage
	}
	if pp > MaxPerPage {
		pp = MaxPerPage
	}
	return p, pp
}
