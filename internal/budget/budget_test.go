package budget_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rmaldonado/obrix/internal/budget"
	"github.com/rmaldonado/obrix/internal/expense"
)

func exp(category expense.Category, amount int64) expense.Expense {
	return expense.Expense{Category: category, Amount: amount}
}

func TestSummarize_Empty(t *testing.T) {
	s := budget.Summarize(100_000, nil)

	assert.Equal(t, int64(100_000), s.Budget)
	assert.Equal(t, int64(0), s.TotalSpent)
	assert.Equal(t, int64(100_000), s.Remaining)
	assert.Equal(t, int64(100_000), s.Balance)
	assert.Equal(t, 0, s.UsedPct)
	assert.Empty(t, s.ByCategory)
}

func TestSummarize_Buckets(t *testing.T) {
	expenses := []expense.Expense{
		exp("Materiales", 30_000),
		exp("Materiales", 10_000),
		exp(expense.CategoryPersonnel, 25_000),
		exp(expense.CategoryCounterInvoice, 15_000),
		exp(expense.CategoryCounterInvoicePaid, 5_000),
	}

	s := budget.Summarize(100_000, expenses)

	assert.Equal(t, int64(85_000), s.TotalSpent)
	assert.Equal(t, int64(15_000), s.Remaining)
	assert.Equal(t, int64(15_000), s.Balance)
	assert.Equal(t, 85, s.UsedPct)
	assert.Equal(t, int64(40_000), s.ByCategory["Materiales"])
	assert.Equal(t, int64(25_000), s.ByCategory[expense.CategoryPersonnel])

	// Only unpaid counter-invoices count as pending.
	assert.Equal(t, int64(15_000), s.PendingCounterInvoices)
	assert.Equal(t, int64(25_000), s.PersonnelTotal)
}

func TestSummarize_Overrun(t *testing.T) {
	s := budget.Summarize(50_000, []expense.Expense{exp("Materiales", 80_000)})

	// Remaining clamps at zero; Balance keeps the signed overrun.
	assert.Equal(t, int64(0), s.Remaining)
	assert.Equal(t, int64(-30_000), s.Balance)
	assert.Equal(t, 160, s.UsedPct)
}

func TestSummarize_ZeroBudget(t *testing.T) {
	s := budget.Summarize(0, []expense.Expense{exp("Materiales", 10_000)})

	assert.Equal(t, 0, s.UsedPct)
	assert.Equal(t, int64(0), s.Remaining)
	assert.Equal(t, int64(-10_000), s.Balance)
}

func TestSummarize_PctRounds(t *testing.T) {
	s := budget.Summarize(30_000, []expense.Expense{exp("Materiales", 10_000)})

	// 33.33% rounds to 33.
	assert.Equal(t, 33, s.UsedPct)

	s = budget.Summarize(30_000, []expense.Expense{exp("Materiales", 20_000)})

	// 66.67% rounds to 67.
	assert.Equal(t, 67, s.UsedPct)
}
