// Package pagination implements the page-number window shown under paginated
// tables.
package pagination

// Entry is one slot in the page-number row. An ellipsis entry is a
// non-interactive placeholder, never a page.
type Entry struct {
	Page     int
	Ellipsis bool
}

func page(n int) Entry { return Entry{Page: n} }
func ellipsis() Entry  { return Entry{Ellipsis: true} }

// Window returns the page numbers to render for a paginator of total pages
// with current selected: all pages up to five, otherwise a head, tail or
// centered window with ellipsis fillers.
func Window(total, current int) []Entry {
	if total <= 5 {
		out := make([]Entry, 0, total)
		for i := 1; i <= total; i++ {
			out = append(out, page(i))
		}

		return out
	}

	if current <= 3 {
		return []Entry{page(1), page(2), page(3), ellipsis(), page(total)}
	}

	if current >= total-2 {
		return []Entry{page(1), ellipsis(), page(total - 2), page(total - 1), page(total)}
	}

	return []Entry{page(1), ellipsis(), page(current - 1), page(current), page(current + 1), ellipsis(), page(total)}
}

// PageCount is ceil(totalItems/pageSize) with a floor of one page.
func PageCount(totalItems, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}

	pages := (totalItems + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}

	return pages
}
