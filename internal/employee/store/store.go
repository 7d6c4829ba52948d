package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/rmaldonado/obrix/internal/employee"
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
	id, first_name, last_name, birth_date, address, address_proof, criminal_record,
	email, phone, emergency_contact_name, emergency_contact_phone, alias, cbu,
	specialty, coverage_areas, availability, shirt_size, shoe_size, status,
	start_date, hourly_rate, saldo_actual
`

func scanEmployee(s scanner) (*employee.Employee, error) {
	var e employee.Employee

	var statusStr string

	var alias, cbu, shirtSize, shoeSize sql.NullString

	var areasRaw []byte

	if err := s.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.BirthDate, &e.Address, &e.AddressProof,
		&e.CriminalRecord, &e.Email, &e.Phone, &e.EmergencyContactName,
		&e.EmergencyContactPhone, &alias, &cbu, &e.Specialty, &areasRaw,
		&e.Availability, &shirtSize, &shoeSize, &statusStr, &e.StartDate,
		&e.HourlyRate, &e.SaldoActual,
	); err != nil {
		return nil, err
	}

	e.Status = employee.Status(statusStr)
	e.Alias = alias.String
	e.CBU = cbu.String
	e.ShirtSize = shirtSize.String
	e.ShoeSize = shoeSize.String

	if len(areasRaw) > 0 {
		if err := json.Unmarshal(areasRaw, &e.CoverageAreas); err != nil {
			return nil, fmt.Errorf("decoding coverage areas: %w", err)
		}
	}

	if e.CoverageAreas == nil {
		e.CoverageAreas = []string{}
	}

	return &e, nil
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

func (s *Store) List(ctx context.Context, params ListParams) ([]*employee.Employee, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting employees: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM employees ORDER BY %s %s LIMIT $1 OFFSET $2`,
		selectColumns, params.Sort, orderDir(params.Desc))

	rows, err := s.db.QueryContext(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var employees []*employee.Employee

	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning employee: %w", err)
		}

		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating employees: %w", err)
	}

	return employees, total, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	query := `SELECT ` + selectColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, employee.ErrNotFound
		}

		return nil, fmt.Errorf("getting employee: %w", err)
	}

	return e, nil
}

func (s *Store) Create(ctx context.Context, e *employee.Employee) error {
	areas, err := json.Marshal(e.CoverageAreas)
	if err != nil {
		return fmt.Errorf("encoding coverage areas: %w", err)
	}

	query := `
		INSERT INTO employees (first_name, last_name, birth_date, address, address_proof,
			criminal_record, email, phone, emergency_contact_name, emergency_contact_phone,
			alias, cbu, specialty, coverage_areas, availability, shirt_size, shoe_size,
			status, start_date, hourly_rate, saldo_actual)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21)
		RETURNING id
	`

	if err := s.db.QueryRowContext(ctx, query,
		e.FirstName, e.LastName, e.BirthDate, e.Address, e.AddressProof, e.CriminalRecord,
		e.Email, e.Phone, e.EmergencyContactName, e.EmergencyContactPhone,
		e.Alias, e.CBU, e.Specialty, areas, e.Availability, e.ShirtSize, e.ShoeSize,
		e.Status, e.StartDate, e.HourlyRate, e.SaldoActual,
	).Scan(&e.ID); err != nil {
		return fmt.Errorf("creating employee: %w", err)
	}

	return nil
}

func (s *Store) Update(ctx context.Context, e *employee.Employee) error {
	areas, err := json.Marshal(e.CoverageAreas)
	if err != nil {
		return fmt.Errorf("encoding coverage areas: %w", err)
	}

	query := `
		UPDATE employees
		SET first_name = $1, last_name = $2, birth_date = $3, address = $4,
			address_proof = $5, criminal_record = $6, email = $7, phone = $8,
			emergency_contact_name = $9, emergency_contact_phone = $10, alias = $11,
			cbu = $12, specialty = $13, coverage_areas = $14, availability = $15,
			shirt_size = $16, shoe_size = $17, status = $18, start_date = $19,
			hourly_rate = $20, saldo_actual = $21
		WHERE id = $22
	`

	if _, err := s.db.ExecContext(ctx, query,
		e.FirstName, e.LastName, e.BirthDate, e.Address, e.AddressProof, e.CriminalRecord,
		e.Email, e.Phone, e.EmergencyContactName, e.EmergencyContactPhone,
		e.Alias, e.CBU, e.Specialty, areas, e.Availability, e.ShirtSize, e.ShoeSize,
		e.Status, e.StartDate, e.HourlyRate, e.SaldoActual, e.ID,
	); err != nil {
		return fmt.Errorf("updating employee: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting employee: %w", err)
	}

	return nil
}
