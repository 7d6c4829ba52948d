// Package budget computes the derived budget breakdown of a project. Nothing
// here is stored: every value is a pure fold over the current expense list,
// recomputed on each read.
package budget

import (
	"math"

	"github.com/rmaldonado/obrix/internal/expense"
)

// Summary is the budget breakdown of one project.
type Summary struct {
	Budget     int64
	TotalSpent int64
	// Remaining is clamped at zero for display. Balance carries the signed
	// value so an overrun is still visible.
	Remaining int64
	Balance   int64
	// UsedPct is 0 when the budget is 0.
	UsedPct int

	ByCategory map[expense.Category]int64
	// PendingCounterInvoices sums Contrafactura expenses only; paid ones
	// (ContrafacturaPagada) are excluded.
	PendingCounterInvoices int64
	// PersonnelTotal sums the Personal category.
	PersonnelTotal int64
}

// Summarize folds the expense list into a Summary. All categories count
// towards TotalSpent, unpaid counter-invoices included.
func Summarize(budget int64, expenses []expense.Expense) Summary {
	s := Summary{
		Budget:     budget,
		ByCategory: make(map[expense.Category]int64),
	}

	for _, e := range expenses {
		s.TotalSpent += e.Amount
		s.ByCategory[e.Category] += e.Amount

		switch e.Category {
		case expense.CategoryCounterInvoice:
			s.PendingCounterInvoices += e.Amount
		case expense.CategoryPersonnel:
			s.PersonnelTotal += e.Amount
		}
	}

	s.Balance = budget - s.TotalSpent

	s.Remaining = s.Balance
	if s.Remaining < 0 {
		s.Remaining = 0
	}

	if budget > 0 {
		s.UsedPct = int(math.Round(float64(s.TotalSpent) / float64(budget) * 100))
	}

	return s
}
