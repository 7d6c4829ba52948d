package export_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmaldonado/obrix/internal/client"
	"github.com/rmaldonado/obrix/internal/employee"
	"github.com/rmaldonado/obrix/internal/export"
	"github.com/rmaldonado/obrix/internal/project"
)

func TestProjectsWorkbook(t *testing.T) {
	clientID := uuid.New()
	empA := uuid.New()
	empB := uuid.New()
	endDate := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	projects := []project.Project{
		{
			ID:          uuid.New(),
			Name:        "Impermeabilización terraza",
			ClientID:    clientID,
			Address:     "Av. Rivadavia 1234",
			Category:    project.CategoryWaterproofing,
			Budget:      1_500_000_00,
			Status:      project.StatusFinished,
			Progress:    100,
			StartDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			DueDate:     time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			EndDate:     &endDate,
			Team:        []uuid.UUID{empA, empB},
			Description: "Membrana completa",
		},
	}

	clients := []client.Client{
		{ID: clientID, FirstName: "Ana", LastName: "García"},
	}

	employees := []employee.Employee{
		{ID: empA, FirstName: "Juan", LastName: "Pérez"},
		{ID: empB, FirstName: "Luis", LastName: "Moreno"},
	}

	svc := export.NewService()

	f, err := svc.ProjectsWorkbook(projects, clients, employees)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Proyectos", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Nombre", header)

	name, err := f.GetCellValue("Proyectos", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Impermeabilización terraza", name)

	clientName, err := f.GetCellValue("Proyectos", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ana García", clientName)

	budget, err := f.GetCellValue("Proyectos", "E2")
	require.NoError(t, err)
	assert.Equal(t, "1500000", budget)

	end, err := f.GetCellValue("Proyectos", "H2")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-30", end)

	progress, err := f.GetCellValue("Proyectos", "J2")
	require.NoError(t, err)
	assert.Equal(t, "100%", progress)

	team, err := f.GetCellValue("Proyectos", "K2")
	require.NoError(t, err)
	assert.Equal(t, "Juan Pérez, Luis Moreno", team)
}

func TestProjectsWorkbook_UnknownIDsFallBack(t *testing.T) {
	clientID := uuid.New()

	projects := []project.Project{
		{
			ID:        uuid.New(),
			Name:      "Pintura fachada",
			ClientID:  clientID,
			StartDate: time.Now(),
			DueDate:   time.Now(),
		},
	}

	svc := export.NewService()

	f, err := svc.ProjectsWorkbook(projects, nil, nil)
	require.NoError(t, err)
	defer f.Close()

	clientName, err := f.GetCellValue("Proyectos", "B2")
	require.NoError(t, err)
	assert.Equal(t, clientID.String(), clientName)

	end, err := f.GetCellValue("Proyectos", "H2")
	require.NoError(t, err)
	assert.Empty(t, end)
}

func TestExportProjects_WritesFile(t *testing.T) {
	path := t.TempDir() + "/proyectos.xlsx"

	svc := export.NewService()

	err := svc.ExportProjects(path, []project.Project{
		{ID: uuid.New(), Name: "Oficinas", StartDate: time.Now(), DueDate: time.Now()},
	}, nil, nil)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
