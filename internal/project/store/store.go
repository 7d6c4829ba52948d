package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/rmaldonado/obrix/internal/project"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectColumns = `
	id, name, client_id, address, category, budget, status, progress,
	start_date, due_date, end_date, team, description
`

// scanProject reads a project row. Team is stored as a jsonb array of ids.
func scanProject(s scanner) (*project.Project, error) {
	var p project.Project

	var categoryStr, statusStr string

	var teamRaw []byte

	if err := s.Scan(
		&p.ID, &p.Name, &p.ClientID, &p.Address, &categoryStr, &p.Budget, &statusStr,
		&p.Progress, &p.StartDate, &p.DueDate, &p.EndDate, &teamRaw, &p.Description,
	); err != nil {
		return nil, err
	}

	p.Category = project.Category(categoryStr)
	p.Status = project.Status(statusStr)

	if len(teamRaw) > 0 {
		if err := json.Unmarshal(teamRaw, &p.Team); err != nil {
			return nil, fmt.Errorf("decoding team: %w", err)
		}
	}

	if p.Team == nil {
		p.Team = []uuid.UUID{}
	}

	return &p, nil
}

type ListParams struct {
	Limit  int
	Offset int
	Sort   string // whitelisted column
	Desc   bool
}

func orderDir(desc bool) string {
	if desc {
		return "DESC"
	}

	return "ASC"
}

func (s *Store) List(ctx context.Context, params ListParams) ([]*project.Project, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting projects: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM projects ORDER BY %s %s LIMIT $1 OFFSET $2`,
		selectColumns, params.Sort, orderDir(params.Desc))

	rows, err := s.db.QueryContext(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*project.Project

	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning project: %w", err)
		}

		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating projects: %w", err)
	}

	return projects, total, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	query := `SELECT ` + selectColumns + ` FROM projects WHERE id = $1`

	p, err := scanProject(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, project.ErrNotFound
		}

		return nil, fmt.Errorf("getting project: %w", err)
	}

	return p, nil
}

func (s *Store) Create(ctx context.Context, p *project.Project) error {
	team, err := json.Marshal(p.Team)
	if err != nil {
		return fmt.Errorf("encoding team: %w", err)
	}

	query := `
		INSERT INTO projects (name, client_id, address, category, budget, status, progress,
			start_date, due_date, end_date, team, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	if err := s.db.QueryRowContext(ctx, query,
		p.Name, p.ClientID, p.Address, p.Category, p.Budget, p.Status, p.Progress,
		p.StartDate, p.DueDate, p.EndDate, team, p.Description,
	).Scan(&p.ID); err != nil {
		return fmt.Errorf("creating project: %w", err)
	}

	return nil
}

func (s *Store) Update(ctx context.Context, p *project.Project) error {
	team, err := json.Marshal(p.Team)
	if err != nil {
		return fmt.Errorf("encoding team: %w", err)
	}

	query := `
		UPDATE projects
		SET name = $1, client_id = $2, address = $3, category = $4, budget = $5,
			status = $6, progress = $7, start_date = $8, due_date = $9, end_date = $10,
			team = $11, description = $12
		WHERE id = $13
	`

	if _, err := s.db.ExecContext(ctx, query,
		p.Name, p.ClientID, p.Address, p.Category, p.Budget, p.Status, p.Progress,
		p.StartDate, p.DueDate, p.EndDate, team, p.Description, p.ID,
	); err != nil {
		return fmt.Errorf("updating project: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	return nil
}
