package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rmaldonado/obrix/internal/pagination"
)

const gwTimeout = 10 * time.Second

var amountPrinter = message.NewPrinter(language.MustParse("es-AR"))

// FormatAmount renders an amount stored as centavos with the local thousands
// and decimal separators ("$ 1.234,50").
func FormatAmount(centavos int64) string {
	return amountPrinter.Sprintf("$ %.2f", float64(centavos)/100.0)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// GwCtx returns a context with a standard timeout for gateway operations.
func GwCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), gwTimeout)
}

// FormatPages renders the pagination footer ("1 … 4 [5] 6 … 12").
func FormatPages(totalPages, current int) string {
	var parts []string

	for _, e := range pagination.Window(totalPages, current) {
		switch {
		case e.Ellipsis:
			parts = append(parts, "…")
		case e.Page == current:
			parts = append(parts, "["+strconv.Itoa(e.Page)+"]")
		default:
			parts = append(parts, strconv.Itoa(e.Page))
		}
	}

	return strings.Join(parts, " ")
}

// ParseAmount reads a user-typed amount in pesos ("1234,50" or "1234.50")
// into centavos.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))

	// A comma marks the local format: dots are thousands separators.
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	return int64(v*100 + 0.5), nil
}
