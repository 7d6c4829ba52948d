package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Collection is the gateway resource name for employee payments.
const Collection = "pagosPersonal"

var (
	ErrNotFound = errors.New("payment not found")
	// ErrZeroAmount rejects a payment before any request is issued.
	ErrZeroAmount = errors.New("payment amount must be greater than zero")
)

// Type distinguishes a regular payment from an advance.
type Type string

const (
	TypePago     Type = "pago"
	TypeAdelanto Type = "adelanto"
)

// Payment is money handed to an employee. Registering one debits the
// employee's running balance; deleting one does not credit it back.
type Payment struct {
	ID         uuid.UUID  `json:"id"`
	EmployeeID uuid.UUID  `json:"employeeId"`
	ProjectID  *uuid.UUID `json:"projectId,omitempty"`
	Date       time.Time  `json:"date"`
	Type       Type       `json:"type"`
	Amount     int64      `json:"amount"` // centavos
	Notes      string     `json:"notes,omitempty"`
}

type CreateParams struct {
	EmployeeID uuid.UUID  `json:"employeeId"`
	ProjectID  *uuid.UUID `json:"projectId,omitempty"`
	Date       time.Time  `json:"date"`
	Type       Type       `json:"type"`
	Amount     int64      `json:"amount"`
	Notes      string     `json:"notes,omitempty"`
}
