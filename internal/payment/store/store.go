package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rmaldonado/obrix/internal/payment"
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
	id, employee_id, project_id, date, type, amount, notes
`

func scanPayment(s scanner) (*payment.Payment, error) {
	var p payment.Payment

	var typeStr string

	var notes sql.NullString

	if err := s.Scan(
		&p.ID, &p.EmployeeID, &p.ProjectID, &p.Date, &typeStr, &p.Amount, &notes,
	); err != nil {
		return nil, err
	}

	p.Type = payment.Type(typeStr)
	p.Notes = notes.String

	return &p, nil
}

type ListParams struct {
	EmployeeID *uuid.UUID
	ProjectID  *uuid.UUID
	Limit      int
	Offset     int
	Sort       string
	Desc       bool
}

func orderDir(desc bool) string {
	if desc {
		return "DESC"
	}

	return "ASC"
}

func (s *Store) List(ctx context.Context, params ListParams) ([]*payment.Payment, int, error) {
	where := " WHERE 1=1"

	var args []any

	if params.EmployeeID != nil {
		args = append(args, *params.EmployeeID)
		where += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}

	if params.ProjectID != nil {
		args = append(args, *params.ProjectID)
		where += fmt.Sprintf(" AND project_id = $%d", len(args))
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employee_payments`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting payments: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM employee_payments%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		selectColumns, where, params.Sort, orderDir(params.Desc), len(args)+1, len(args)+2)

	args = append(args, params.Limit, params.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*payment.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating payments: %w", err)
	}

	return payments, total, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	query := `SELECT ` + selectColumns + ` FROM employee_payments WHERE id = $1`

	p, err := scanPayment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, payment.ErrNotFound
		}

		return nil, fmt.Errorf("getting payment: %w", err)
	}

	return p, nil
}

func (s *Store) Create(ctx context.Context, p *payment.Payment) error {
	query := `
		INSERT INTO employee_payments (employee_id, project_id, date, type, amount, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	if err := s.db.QueryRowContext(ctx, query,
		p.EmployeeID, p.ProjectID, p.Date, p.Type, p.Amount, p.Notes,
	).Scan(&p.ID); err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM employee_payments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting payment: %w", err)
	}

	return nil
}
