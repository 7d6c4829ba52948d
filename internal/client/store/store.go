package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rmaldonado/obrix/internal/client"
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
	id, first_name, last_name, phone, email, address, city, state, zip, dni,
	notes, created_at, reference_medium, generated_sale
`

func scanClient(s scanner) (*client.Client, error) {
	var c client.Client

	var notes sql.NullString

	if err := s.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email, &c.Address,
		&c.City, &c.State, &c.Zip, &c.DNI, &notes, &c.CreatedAt,
		&c.ReferenceMedium, &c.GeneratedSale,
	); err != nil {
		return nil, err
	}

	c.Notes = notes.String

	return &c, nil
}

type ListParams struct {
	Limit  int
	Offset int
	Sort   string
	Desc   bool
}

func orderDir(desc bool) string {
	if desc {
		return "DESC"
	}

	return "ASC"
}

func (s *Store) List(ctx context.Context, params ListParams) ([]*client.Client, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting clients: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM clients ORDER BY %s %s LIMIT $1 OFFSET $2`,
		selectColumns, params.Sort, orderDir(params.Desc))

	rows, err := s.db.QueryContext(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*client.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating clients: %w", err)
	}

	return clients, total, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	query := `SELECT ` + selectColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	return c, nil
}

func (s *Store) Create(ctx context.Context, c *client.Client) error {
	query := `
		INSERT INTO clients (first_name, last_name, phone, email, address, city, state,
			zip, dni, notes, created_at, reference_medium, generated_sale)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	if err := s.db.QueryRowContext(ctx, query,
		c.FirstName, c.LastName, c.Phone, c.Email, c.Address, c.City, c.State,
		c.Zip, c.DNI, c.Notes, c.CreatedAt, c.ReferenceMedium, c.GeneratedSale,
	).Scan(&c.ID); err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	return nil
}

func (s *Store) Update(ctx context.Context, c *client.Client) error {
	query := `
		UPDATE clients
		SET first_name = $1, last_name = $2, phone = $3, email = $4, address = $5,
			city = $6, state = $7, zip = $8, dni = $9, notes = $10,
			reference_medium = $11, generated_sale = $12
		WHERE id = $13
	`

	if _, err := s.db.ExecContext(ctx, query,
		c.FirstName, c.LastName, c.Phone, c.Email, c.Address, c.City, c.State,
		c.Zip, c.DNI, c.Notes, c.ReferenceMedium, c.GeneratedSale, c.ID,
	); err != nil {
		return fmt.Errorf("updating client: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	return nil
}
