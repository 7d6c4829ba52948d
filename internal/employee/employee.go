package employee

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Collection is the gateway resource name for employees.
const Collection = "personal"

var ErrNotFound = errors.New("employee not found")

// Status marks whether an employee is currently on the roster.
type Status string

const (
	StatusActive   Status = "activo"
	StatusInactive Status = "inactivo"
)

// Employee is a worker on the payroll. SaldoActual is the running balance in
// centavos: positive means the business owes the employee. It must equal the
// sum of credited time-entry amounts minus debited payments (eventually, not
// transactionally).
type Employee struct {
	ID                    uuid.UUID  `json:"id"`
	FirstName             string     `json:"firstName"`
	LastName              string     `json:"lastName"`
	BirthDate             *time.Time `json:"birthDate,omitempty"`
	Address               string     `json:"address"`
	AddressProof          string     `json:"addressProof"`
	CriminalRecord        string     `json:"criminalRecord"`
	Email                 string     `json:"email"`
	Phone                 string     `json:"phone"`
	EmergencyContactName  string     `json:"emergencyContactName"`
	EmergencyContactPhone string     `json:"emergencyContactPhone"`
	Alias                 string     `json:"alias,omitempty"`
	CBU                   string     `json:"cbu,omitempty"`
	Specialty             string     `json:"specialty"`
	CoverageAreas         []string   `json:"coverageAreas"`
	Availability          string     `json:"availability"`
	ShirtSize             string     `json:"shirtSize,omitempty"`
	ShoeSize              string     `json:"shoeSize,omitempty"`
	Status                Status     `json:"status"`
	StartDate             *time.Time `json:"startDate,omitempty"`
	HourlyRate            int64      `json:"hourlyRate,omitempty"` // centavos
	SaldoActual           int64      `json:"saldoActual"`          // centavos
}

type CreateParams struct {
	FirstName             string     `json:"firstName"`
	LastName              string     `json:"lastName"`
	BirthDate             *time.Time `json:"birthDate,omitempty"`
	Address               string     `json:"address"`
	AddressProof          string     `json:"addressProof"`
	CriminalRecord        string     `json:"criminalRecord"`
	Email                 string     `json:"email"`
	Phone                 string     `json:"phone"`
	EmergencyContactName  string     `json:"emergencyContactName"`
	EmergencyContactPhone string     `json:"emergencyContactPhone"`
	Alias                 string     `json:"alias,omitempty"`
	CBU                   string     `json:"cbu,omitempty"`
	Specialty             string     `json:"specialty"`
	CoverageAreas         []string   `json:"coverageAreas"`
	Availability          string     `json:"availability"`
	ShirtSize             string     `json:"shirtSize,omitempty"`
	ShoeSize              string     `json:"shoeSize,omitempty"`
	Status                Status     `json:"status"`
	StartDate             *time.Time `json:"startDate,omitempty"`
	HourlyRate            int64      `json:"hourlyRate,omitempty"`
	SaldoActual           int64      `json:"saldoActual"`
}

// UpdateParams carries a partial PATCH; nil fields are left untouched.
// Ledger rules only ever send SaldoActual.
type UpdateParams struct {
	FirstName             *string    `json:"firstName,omitempty"`
	LastName              *string    `json:"lastName,omitempty"`
	BirthDate             *time.Time `json:"birthDate,omitempty"`
	Address               *string    `json:"address,omitempty"`
	AddressProof          *string    `json:"addressProof,omitempty"`
	CriminalRecord        *string    `json:"criminalRecord,omitempty"`
	Email                 *string    `json:"email,omitempty"`
	Phone                 *string    `json:"phone,omitempty"`
	EmergencyContactName  *string    `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone *string    `json:"emergencyContactPhone,omitempty"`
	Alias                 *string    `json:"alias,omitempty"`
	CBU                   *string    `json:"cbu,omitempty"`
	Specialty             *string    `json:"specialty,omitempty"`
	CoverageAreas         *[]string  `json:"coverageAreas,omitempty"`
	Availability          *string    `json:"availability,omitempty"`
	ShirtSize             *string    `json:"shirtSize,omitempty"`
	ShoeSize              *string    `json:"shoeSize,omitempty"`
	Status                *Status    `json:"status,omitempty"`
	StartDate             *time.Time `json:"startDate,omitempty"`
	HourlyRate            *int64     `json:"hourlyRate,omitempty"`
	SaldoActual           *int64     `json:"saldoActual,omitempty"`
}
