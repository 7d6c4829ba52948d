package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rmaldonado/obrix/internal/user"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectColumns = `
	id, usuario, clave, nivel
`

func scanUser(s scanner) (*user.User, error) {
	var u user.User

	var nivel string

	if err := s.Scan(&u.ID, &u.Usuario, &u.Clave, &nivel); err != nil {
		return nil, err
	}

	u.Nivel = user.Level(nivel)

	return &u, nil
}

// GetByCredentials matches usuario and clave by plain equality. A miss is
// reported as user.ErrInvalidCredentials so callers never learn which of
// the two fields was wrong.
func (s *Store) GetByCredentials(ctx context.Context, usuario, clave string) (*user.User, error) {
	query := `SELECT ` + selectColumns + ` FROM users WHERE usuario = $1 AND clave = $2`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, usuario, clave))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrInvalidCredentials
		}

		return nil, fmt.Errorf("getting user by credentials: %w", err)
	}

	return u, nil
}
