package listquery_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rmaldonado/obrix/internal/http/listquery"
)

var sortCols = map[string]string{
	"name":      "name",
	"startDate": "start_date",
}

func parse(t *testing.T, target string) listquery.Params {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)

	return listquery.Parse(req, sortCols, "name", false)
}

func TestParse_Defaults(t *testing.T) {
	p := parse(t, "/proyectos")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, "name", p.Sort)
	assert.False(t, p.Desc)
	assert.Equal(t, 0, p.Offset)
	assert.Equal(t, "ASC", p.Direction())
}

func TestParse_PageAndLimit(t *testing.T) {
	p := parse(t, "/proyectos?_page=3&_limit=25")

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, 50, p.Offset)
}

func TestParse_SortMapsToColumn(t *testing.T) {
	p := parse(t, "/proyectos?_sort=startDate&_order=desc")

	assert.Equal(t, "start_date", p.Sort)
	assert.True(t, p.Desc)
	assert.Equal(t, "DESC", p.Direction())
}

func TestParse_UnknownSortFallsBack(t *testing.T) {
	p := parse(t, "/proyectos?_sort=clave")

	assert.Equal(t, "name", p.Sort)
}

func TestParse_InvalidValuesIgnored(t *testing.T) {
	p := parse(t, "/proyectos?_page=abc&_limit=-5&_order=sideways")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.False(t, p.Desc)
}

func TestWriteTotal(t *testing.T) {
	rec := httptest.NewRecorder()
	listquery.WriteTotal(rec, 42)

	assert.Equal(t, "42", rec.Header().Get(listquery.TotalCountHeader))
}
