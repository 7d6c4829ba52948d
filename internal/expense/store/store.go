package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rmaldonado/obrix/internal/expense"
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
	id, project_id, concept, category, amount, date, supplier, invoice_ref
`

func scanExpense(s scanner) (*expense.Expense, error) {
	var e expense.Expense

	var categoryStr string

	var supplier, invoiceRef sql.NullString

	if err := s.Scan(
		&e.ID, &e.ProjectID, &e.Concept, &categoryStr, &e.Amount, &e.Date,
		&supplier, &invoiceRef,
	); err != nil {
		return nil, err
	}

	e.Category = expense.Category(categoryStr)
	e.Supplier = supplier.String
	e.InvoiceRef = invoiceRef.String

	return &e, nil
}

type ListParams struct {
	ProjectID *uuid.UUID
	Limit     int
	Offset    int
	Sort      string
	Desc      bool
}

func orderDir(desc bool) string {
	if desc {
		return "DESC"
	}

	return "ASC"
}

func (s *Store) List(ctx context.Context, params ListParams) ([]*expense.Expense, int, error) {
	where := ""

	var args []any

	if params.ProjectID != nil {
		where = " WHERE project_id = $1"

		args = append(args, *params.ProjectID)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM project_expenses`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting expenses: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM project_expenses%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		selectColumns, where, params.Sort, orderDir(params.Desc), len(args)+1, len(args)+2)

	args = append(args, params.Limit, params.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating expenses: %w", err)
	}

	return expenses, total, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	query := `SELECT ` + selectColumns + ` FROM project_expenses WHERE id = $1`

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, expense.ErrNotFound
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	return e, nil
}

func (s *Store) Create(ctx context.Context, e *expense.Expense) error {
	query := `
		INSERT INTO project_expenses (project_id, concept, category, amount, date, supplier, invoice_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	if err := s.db.QueryRowContext(ctx, query,
		e.ProjectID, e.Concept, e.Category, e.Amount, e.Date, e.Supplier, e.InvoiceRef,
	).Scan(&e.ID); err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

func (s *Store) Update(ctx context.Context, e *expense.Expense) error {
	query := `
		UPDATE project_expenses
		SET concept = $1, category = $2, amount = $3, date = $4, supplier = $5, invoice_ref = $6
		WHERE id = $7
	`

	if _, err := s.db.ExecContext(ctx, query,
		e.Concept, e.Category, e.Amount, e.Date, e.Supplier, e.InvoiceRef, e.ID,
	); err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM project_expenses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	return nil
}
