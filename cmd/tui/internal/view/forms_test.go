package view

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmaldonado/obrix/internal/payment"
	"github.com/rmaldonado/obrix/internal/project"
	"github.com/rmaldonado/obrix/internal/timeentry"
)

func TestBuildPaymentParams(t *testing.T) {
	employeeID := uuid.New()

	params, err := buildPaymentParams(employeeID, "1.500,00", string(payment.TypeAdelanto), "2026-03-15", "semana 11")
	require.NoError(t, err)
	assert.Equal(t, employeeID, params.EmployeeID)
	assert.Equal(t, int64(150000), params.Amount)
	assert.Equal(t, payment.TypeAdelanto, params.Type)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), params.Date)
	assert.Equal(t, "semana 11", params.Notes)
}

func TestBuildPaymentParams_BadAmount(t *testing.T) {
	_, err := buildPaymentParams(uuid.New(), "", string(payment.TypePago), "2026-03-15", "")
	assert.Error(t, err)

	_, err = buildPaymentParams(uuid.New(), "12,34,56", string(payment.TypePago), "2026-03-15", "")
	assert.Error(t, err)
}

func TestBuildPaymentParams_BadDate(t *testing.T) {
	_, err := buildPaymentParams(uuid.New(), "500,00", string(payment.TypePago), "15/03/2026", "")
	assert.ErrorContains(t, err, "fecha inválida")
}

func TestBuildEditTimeParams(t *testing.T) {
	entry := timeentry.TimeEntry{ID: uuid.New(), Hours: 8, Amount: 800000}

	params, err := buildEditTimeParams(entry, "7,5", "9.000,00")
	require.NoError(t, err)
	assert.Equal(t, entry, params.Entry)
	assert.Equal(t, 7.5, params.Hours)
	assert.Equal(t, int64(900000), params.Amount)
}

func TestBuildEditTimeParams_BadInput(t *testing.T) {
	entry := timeentry.TimeEntry{ID: uuid.New()}

	_, err := buildEditTimeParams(entry, "ocho", "9.000,00")
	assert.Error(t, err)

	_, err = buildEditTimeParams(entry, "8", "nueve mil")
	assert.Error(t, err)
}

func TestBuildTimeParams(t *testing.T) {
	projectID := uuid.New()
	employeeID := uuid.New()

	params, err := buildTimeParams(projectID, employeeID.String(), "2026-03-02", "8", "8.000,00", "zanjeo")
	require.NoError(t, err)
	assert.Equal(t, projectID, params.ProjectID)
	assert.Equal(t, employeeID, params.EmployeeID)
	assert.Equal(t, 8.0, params.Hours)
	assert.Equal(t, int64(800000), params.Amount)
	assert.Equal(t, "zanjeo", params.Notes)
}

func TestBuildTimeParams_NoEmployee(t *testing.T) {
	_, err := buildTimeParams(uuid.New(), "", "2026-03-02", "8", "8.000,00", "")
	assert.ErrorContains(t, err, "empleado")
}

func TestBuildExpenseParams_OptionalAmount(t *testing.T) {
	params, err := buildExpenseParams(uuid.New(), "flete", "Transporte", "", "2026-03-02", "")
	require.NoError(t, err)
	assert.Zero(t, params.Amount)

	_, err = buildExpenseParams(uuid.New(), "flete", "Transporte", "mil", "2026-03-02", "")
	assert.Error(t, err)
}

func TestBuildCounterInvoiceParams(t *testing.T) {
	projectID := uuid.New()

	params, err := buildCounterInvoiceParams(projectID, "materiales obra norte", "25.000,00", "FC-0042", "2026-04-01")
	require.NoError(t, err)
	assert.Equal(t, projectID, params.ProjectID)
	assert.Equal(t, int64(2500000), params.Amount)
	assert.Equal(t, "FC-0042", params.Ref)

	_, err = buildCounterInvoiceParams(projectID, "materiales", "", "", "2026-04-01")
	assert.Error(t, err)
}

func TestBuildProjectParams(t *testing.T) {
	clientID := uuid.New()

	params, err := buildProjectParams("Casa Pérez", clientID.String(), "Av. Rivadavia 1200",
		string(project.CategoryRenovation), "150.000,00", "2026-03-01", "", "refacción integral")
	require.NoError(t, err)
	assert.Equal(t, "Casa Pérez", params.Name)
	assert.Equal(t, clientID, params.ClientID)
	assert.Equal(t, int64(15000000), params.Budget)
	assert.Equal(t, project.StatusInProgress, params.Status)
	assert.True(t, params.DueDate.IsZero())
}

func TestBuildProjectParams_Errors(t *testing.T) {
	_, err := buildProjectParams("Casa", "", "", string(project.CategoryPainting), "", "", "", "")
	assert.ErrorContains(t, err, "cliente")

	_, err = buildProjectParams("Casa", uuid.NewString(), "", string(project.CategoryPainting), "pesos", "", "", "")
	assert.Error(t, err)

	_, err = buildProjectParams("Casa", uuid.NewString(), "", string(project.CategoryPainting), "", "marzo", "", "")
	assert.ErrorContains(t, err, "fecha inválida")
}

func TestValidateHours(t *testing.T) {
	assert.NoError(t, validateHours("8"))
	assert.NoError(t, validateHours("7,5"))
	assert.Error(t, validateHours("ocho"))
}

func TestMonthRange(t *testing.T) {
	from, to := monthRange(time.Date(2026, 2, 10, 15, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), to)
}
