package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rmaldonado/obrix/internal/pagination"
)

func pages(entries []pagination.Entry) []int {
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		if e.Ellipsis {
			out = append(out, -1)
		} else {
			out = append(out, e.Page)
		}
	}

	return out
}

func TestWindow_FewPagesShowsAll(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5}, pages(pagination.Window(5, 3)))
	assert.Equal(t, []int{1}, pages(pagination.Window(1, 1)))
}

func TestWindow_NearStart(t *testing.T) {
	// Current page in the first three: leading block plus trailing ellipsis.
	assert.Equal(t, []int{1, 2, 3, -1, 12}, pages(pagination.Window(12, 2)))
	assert.Equal(t, []int{1, 2, 3, -1, 12}, pages(pagination.Window(12, 3)))
}

func TestWindow_NearEnd(t *testing.T) {
	assert.Equal(t, []int{1, -1, 10, 11, 12}, pages(pagination.Window(12, 11)))
	assert.Equal(t, []int{1, -1, 10, 11, 12}, pages(pagination.Window(12, 10)))
}

func TestWindow_Middle(t *testing.T) {
	assert.Equal(t, []int{1, -1, 5, 6, 7, -1, 12}, pages(pagination.Window(12, 6)))
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 1, pagination.PageCount(0, 10))
	assert.Equal(t, 1, pagination.PageCount(10, 10))
	assert.Equal(t, 2, pagination.PageCount(11, 10))
	assert.Equal(t, 4, pagination.PageCount(19, 6))
}
