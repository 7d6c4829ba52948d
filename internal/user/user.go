package user

import (
	"errors"

	"github.com/google/uuid"
)

// Collection is the gateway resource name for application users.
const Collection = "usuarios"

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Level is the access level of a user.
type Level string

const (
	LevelSuperAdmin Level = "superAdmin"
	LevelAdmin      Level = "admin"
)

// User is an application login. Credentials are matched by plain equality,
// which mirrors the deployed dataset. Clave is never serialized back out.
type User struct {
	ID      uuid.UUID `json:"id"`
	Usuario string    `json:"usuario"`
	Clave   string    `json:"-"`
	Nivel   Level     `json:"nivel"`
}
