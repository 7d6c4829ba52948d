package client

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Collection is the gateway resource name for clients.
const Collection = "clientes"

var ErrNotFound = errors.New("client not found")

// Client is a customer record.
type Client struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	Address         string    `json:"address"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	Zip             string    `json:"zip"`
	DNI             string    `json:"dni"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	ReferenceMedium string    `json:"referenceMedium"`
	GeneratedSale   string    `json:"generatedSale"`
}

type CreateParams struct {
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	Address         string    `json:"address"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	Zip             string    `json:"zip"`
	DNI             string    `json:"dni"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	ReferenceMedium string    `json:"referenceMedium"`
	GeneratedSale   string    `json:"generatedSale"`
}

// UpdateParams carries a partial PATCH; nil fields are left untouched.
type UpdateParams struct {
	FirstName       *string `json:"firstName,omitempty"`
	LastName        *string `json:"lastName,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Email           *string `json:"email,omitempty"`
	Address         *string `json:"address,omitempty"`
	City            *string `json:"city,omitempty"`
	State           *string `json:"state,omitempty"`
	Zip             *string `json:"zip,omitempty"`
	DNI             *string `json:"dni,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	ReferenceMedium *string `json:"referenceMedium,omitempty"`
	GeneratedSale   *string `json:"generatedSale,omitempty"`
}
