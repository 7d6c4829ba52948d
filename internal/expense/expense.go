package expense

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Collection is the gateway resource name for project expenses.
const Collection = "gastosProyecto"

var ErrNotFound = errors.New("expense not found")

// Category routes an expense into the budget breakdown buckets. Free-form
// values (Materiales, Mano de Obra, ...) coexist with the reserved ones below.
type Category string

const (
	// CategoryCounterInvoice marks a cost billed through to the client: the
	// expense also raises the project budget by the same amount.
	CategoryCounterInvoice Category = "Contrafactura"
	// CategoryCounterInvoicePaid is a counter-invoice the client settled.
	// Paying reclassifies the category; nothing else changes.
	CategoryCounterInvoicePaid Category = "ContrafacturaPagada"
	// CategoryPersonnel groups labor costs.
	CategoryPersonnel Category = "Personal"
)

// Expense is a cost charged against a project's budget.
type Expense struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"projectId"`
	Concept    string    `json:"concept"`
	Category   Category  `json:"category"`
	Amount     int64     `json:"amount"` // centavos
	Date       time.Time `json:"date"`
	Supplier   string    `json:"supplier,omitempty"`
	InvoiceRef string    `json:"invoiceRef,omitempty"`
}

type CreateParams struct {
	ProjectID  uuid.UUID `json:"projectId"`
	Concept    string    `json:"concept"`
	Category   Category  `json:"category"`
	Amount     int64     `json:"amount"`
	Date       time.Time `json:"date"`
	Supplier   string    `json:"supplier,omitempty"`
	InvoiceRef string    `json:"invoiceRef,omitempty"`
}

// UpdateParams carries a partial PATCH; nil fields are left untouched.
// Paying a counter-invoice sends only Category.
type UpdateParams struct {
	Concept    *string    `json:"concept,omitempty"`
	Category   *Category  `json:"category,omitempty"`
	Amount     *int64     `json:"amount,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	Supplier   *string    `json:"supplier,omitempty"`
	InvoiceRef *string    `json:"invoiceRef,omitempty"`
}
