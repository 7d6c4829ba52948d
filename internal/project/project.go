package project

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Collection is the gateway resource name for projects.
const Collection = "proyectos"

var ErrNotFound = errors.New("project not found")

// Category classifies the kind of work a project involves.
type Category string

const (
	CategoryWaterproofing Category = "impermeabilizacion"
	CategoryRenovation    Category = "refaccion"
	CategoryWorkstation   Category = "puesto de trabajo"
	CategoryPainting      Category = "pintura"
)

// Status represents the lifecycle state of a project.
type Status string

const (
	StatusInProgress Status = "EN_PROGRESO"
	StatusFinished   Status = "FINALIZADA"
	StatusLate       Status = "ATRASADA"
	StatusWarranty   Status = "GARANTIA"
)

// Project is a job for a client. Budget is in centavos and only ever grows
// through explicit budget additions or counter-invoices.
type Project struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	ClientID    uuid.UUID   `json:"clientId"`
	Address     string      `json:"address"`
	Category    Category    `json:"category"`
	Budget      int64       `json:"budget"` // centavos
	Status      Status      `json:"status"`
	Progress    int         `json:"progress"` // 0-100
	StartDate   time.Time   `json:"startDate"`
	DueDate     time.Time   `json:"dueDate"`
	EndDate     *time.Time  `json:"endDate,omitempty"`
	Team        []uuid.UUID `json:"team"`
	Description string      `json:"description"`
}

// CreateParams is the POST payload; the gateway assigns the id.
type CreateParams struct {
	Name        string      `json:"name"`
	ClientID    uuid.UUID   `json:"clientId"`
	Address     string      `json:"address"`
	Category    Category    `json:"category"`
	Budget      int64       `json:"budget"`
	Status      Status      `json:"status"`
	Progress    int         `json:"progress"`
	StartDate   time.Time   `json:"startDate"`
	DueDate     time.Time   `json:"dueDate"`
	Team        []uuid.UUID `json:"team"`
	Description string      `json:"description"`
}

// UpdateParams carries a partial PATCH; nil fields are left untouched.
type UpdateParams struct {
	Name        *string      `json:"name,omitempty"`
	ClientID    *uuid.UUID   `json:"clientId,omitempty"`
	Address     *string      `json:"address,omitempty"`
	Category    *Category    `json:"category,omitempty"`
	Budget      *int64       `json:"budget,omitempty"`
	Status      *Status      `json:"status,omitempty"`
	Progress    *int         `json:"progress,omitempty"`
	StartDate   *time.Time   `json:"startDate,omitempty"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	EndDate     *time.Time   `json:"endDate,omitempty"`
	Team        *[]uuid.UUID `json:"team,omitempty"`
	Description *string      `json:"description,omitempty"`
}
