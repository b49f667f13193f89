package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	assert.Equal(t, Pagination{Total: 25, PerPage: 10, CurrentPage: 2, LastPage: 3}, p)
	assert.Equal(t, 10, p.Offset())

	empty := NewPagination(0, 0, 0)
	assert.Equal(t, 1, empty.CurrentPage)
	assert.Equal(t, DefaultPerPage, empty.PerPage)
	assert.Equal(t, 1, empty.LastPage)

	assert.Equal(t, MaxPerPage, NewPagination(1, 1000, 5).PerPage)
}

func TestPageParams(t *testing.T) {
	page, per := PageParams("3", "5")
	assert.Equal(t, 3, page)
	assert.Equal(t, 5, per)

	page, per = PageParams("abc", "-1")
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPerPage, per)

	_, per = PageParams("1", "500")
	assert.Equal(t, MaxPerPage, per)
}

func TestOffsetPastLastPage(t *testing.T) {
	page, per := PageParams("9223372036854775807", "30")
	p := NewPagination(page, per, 5)

	assert.Equal(t, page, p.CurrentPage)
	assert.Equal(t, 1, p.LastPage)
	assert.Equal(t, 30, p.Offset())

	assert.Equal(t, 30, NewPagination(7, 10, 25).Offset())
	assert.Equal(t, 20, NewPagination(3, 10, 25).Offset())
}
