package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, PageSize: DefaultPageSize}, NewPagination(0, 0))
	assert.Equal(t, Pagination{Page: 3, PageSize: MaxPageSize}, NewPagination(3, 500))

	p := NewPagination(3, 10)
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 10, p.Limit())
}
