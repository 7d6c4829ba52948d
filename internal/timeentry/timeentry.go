package timeentry

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Collection is the gateway resource name for time entries.
const Collection = "tiempos"

var ErrNotFound = errors.New("time entry not found")

// TimeEntry records a day of work on a project. Amount is the pay for that
// day in centavos; registering it credits the employee's running balance.
type TimeEntry struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"projectId"`
	EmployeeID uuid.UUID `json:"employeeId"`
	Date       time.Time `json:"date"`
	Hours      float64   `json:"hours"`
	Amount     int64     `json:"amount"` // centavos
	Notes      string    `json:"notes,omitempty"`
}

type CreateParams struct {
	ProjectID  uuid.UUID `json:"projectId"`
	EmployeeID uuid.UUID `json:"employeeId"`
	Date       time.Time `json:"date"`
	Hours      float64   `json:"hours"`
	Amount     int64     `json:"amount"`
	Notes      string    `json:"notes,omitempty"`
}

// UpdateParams carries a partial PATCH; nil fields are left untouched.
type UpdateParams struct {
	Date   *time.Time `json:"date,omitempty"`
	Hours  *float64   `json:"hours,omitempty"`
	Amount *int64     `json:"amount,omitempty"`
	Notes  *string    `json:"notes,omitempty"`
}
