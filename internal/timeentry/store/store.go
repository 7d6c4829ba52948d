package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rmaldonado/obrix/internal/timeentry"
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
	id, project_id, employee_id, date, hours, amount, notes
`

func scanEntry(s scanner) (*timeentry.TimeEntry, error) {
	var t timeentry.TimeEntry

	var notes sql.NullString

	if err := s.Scan(
		&t.ID, &t.ProjectID, &t.EmployeeID, &t.Date, &t.Hours, &t.Amount, &notes,
	); err != nil {
		return nil, err
	}

	t.Notes = notes.String

	return &t, nil
}

type ListParams struct {
	ProjectID  *uuid.UUID
	EmployeeID *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
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

func (s *Store) List(ctx context.Context, params ListParams) ([]*timeentry.TimeEntry, int, error) {
	where := " WHERE 1=1"

	var args []any

	if params.ProjectID != nil {
		args = append(args, *params.ProjectID)
		where += fmt.Sprintf(" AND project_id = $%d", len(args))
	}

	if params.EmployeeID != nil {
		args = append(args, *params.EmployeeID)
		where += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}

	if params.DateFrom != nil {
		args = append(args, *params.DateFrom)
		where += fmt.Sprintf(" AND date >= $%d", len(args))
	}

	if params.DateTo != nil {
		args = append(args, *params.DateTo)
		where += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM time_entries`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting time entries: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM time_entries%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		selectColumns, where, params.Sort, orderDir(params.Desc), len(args)+1, len(args)+2)

	args = append(args, params.Limit, params.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing time entries: %w", err)
	}
	defer rows.Close()

	var entries []*timeentry.TimeEntry

	for rows.Next() {
		t, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning time entry: %w", err)
		}

		entries = append(entries, t)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating time entries: %w", err)
	}

	return entries, total, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*timeentry.TimeEntry, error) {
	query := `SELECT ` + selectColumns + ` FROM time_entries WHERE id = $1`

	t, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, timeentry.ErrNotFound
		}

		return nil, fmt.Errorf("getting time entry: %w", err)
	}

	return t, nil
}

func (s *Store) Create(ctx context.Context, t *timeentry.TimeEntry) error {
	query := `
		INSERT INTO time_entries (project_id, employee_id, date, hours, amount, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	if err := s.db.QueryRowContext(ctx, query,
		t.ProjectID, t.EmployeeID, t.Date, t.Hours, t.Amount, t.Notes,
	).Scan(&t.ID); err != nil {
		return fmt.Errorf("creating time entry: %w", err)
	}

	return nil
}

func (s *Store) Update(ctx context.Context, t *timeentry.TimeEntry) error {
	query := `
		UPDATE time_entries
		SET date = $1, hours = $2, amount = $3, notes = $4
		WHERE id = $5
	`

	if _, err := s.db.ExecContext(ctx, query, t.Date, t.Hours, t.Amount, t.Notes, t.ID); err != nil {
		return fmt.Errorf("updating time entry: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}

	return nil
}
