// Package export writes entity snapshots to spreadsheet files for sharing
// outside the application.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/rmaldonado/obrix/internal/client"
	"github.com/rmaldonado/obrix/internal/employee"
	"github.com/rmaldonado/obrix/internal/project"
)

const projectsSheet = "Proyectos"

// Column headers match the labels used on the printed reports.
var projectHeaders = []string{
	"Nombre", "Cliente", "Dirección", "Categoría", "Presupuesto",
	"Fecha inicio", "Fecha límite", "Fecha cierre", "Estado", "Progreso",
	"Equipo", "Descripción",
}

// Service builds spreadsheets from already-loaded entity slices, so it never
// issues gateway calls of its own.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// ExportProjects writes the project list to an XLSX file at path. Client and
// team ids are resolved to display names; unknown ids fall back to the raw id.
func (s *Service) ExportProjects(path string, projects []project.Project, clients []client.Client, employees []employee.Employee) error {
	f, err := s.ProjectsWorkbook(projects, clients, employees)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}

	return nil
}

// ProjectsWorkbook builds the in-memory workbook. The caller owns closing it.
func (s *Service) ProjectsWorkbook(projects []project.Project, clients []client.Client, employees []employee.Employee) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", projectsSheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	for i, h := range projectHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("resolving header cell: %w", err)
		}

		if err := f.SetCellValue(projectsSheet, cell, h); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	clientNames := make(map[uuid.UUID]string, len(clients))
	for _, c := range clients {
		clientNames[c.ID] = c.FirstName + " " + c.LastName
	}

	employeeNames := make(map[uuid.UUID]string, len(employees))
	for _, e := range employees {
		employeeNames[e.ID] = e.FirstName + " " + e.LastName
	}

	for row, p := range projects {
		values := []any{
			p.Name,
			resolveName(clientNames, p.ClientID),
			p.Address,
			string(p.Category),
			float64(p.Budget) / 100,
			p.StartDate.Format(time.DateOnly),
			p.DueDate.Format(time.DateOnly),
			formatEndDate(p.EndDate),
			string(p.Status),
			fmt.Sprintf("%d%%", p.Progress),
			teamNames(employeeNames, p.Team),
			p.Description,
		}

		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("resolving cell: %w", err)
			}

			if err := f.SetCellValue(projectsSheet, cell, v); err != nil {
				return nil, fmt.Errorf("writing row %d: %w", row+2, err)
			}
		}
	}

	return f, nil
}

func resolveName(names map[uuid.UUID]string, id uuid.UUID) string {
	if name, ok := names[id]; ok {
		return name
	}

	return id.String()
}

func formatEndDate(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.Format(time.DateOnly)
}

func teamNames(names map[uuid.UUID]string, team []uuid.UUID) string {
	parts := make([]string, 0, len(team))
	for _, id := range team {
		parts = append(parts, resolveName(names, id))
	}

	return strings.Join(parts, ", ")
}
