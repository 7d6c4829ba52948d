// Package listquery parses the json-server style pagination query shared by
// every collection endpoint.
package listquery

import (
	"net/http"
	"strconv"
)

// TotalCountHeader carries the unpaginated collection size on list responses.
const TotalCountHeader = "X-Total-Count"

const defaultLimit = 10

// Params is the parsed _page/_limit/_sort/_order query.
type Params struct {
	Page   int
	Limit  int
	Sort   string // SQL column, already whitelisted
	Desc   bool
	Offset int
}

// Parse reads the pagination query. sortCols maps JSON field names to SQL
// columns; unknown sort fields fall back to defaultSort (a key of sortCols).
func Parse(r *http.Request, sortCols map[string]string, defaultSort string, defaultDesc bool) Params {
	q := r.URL.Query()

	p := Params{
		Page:  1,
		Limit: defaultLimit,
		Sort:  sortCols[defaultSort],
		Desc:  defaultDesc,
	}

	if n, err := strconv.Atoi(q.Get("_page")); err == nil && n > 0 {
		p.Page = n
	}

	if n, err := strconv.Atoi(q.Get("_limit")); err == nil && n > 0 {
		p.Limit = n
	}

	if col, ok := sortCols[q.Get("_sort")]; ok {
		p.Sort = col
	}

	switch q.Get("_order") {
	case "asc":
		p.Desc = false
	case "desc":
		p.Desc = true
	}

	p.Offset = (p.Page - 1) * p.Limit

	return p
}

// Direction is the SQL keyword for the parsed order.
func (p Params) Direction() string {
	if p.Desc {
		return "DESC"
	}

	return "ASC"
}

// WriteTotal sets the total-count header. It must be called before the body
// is written.
func WriteTotal(w http.ResponseWriter, total int) {
	w.Header().Set(TotalCountHeader, strconv.Itoa(total))
}
