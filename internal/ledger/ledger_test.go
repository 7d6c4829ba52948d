package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rmaldonado/obrix/internal/employee"
	"github.com/rmaldonado/obrix/internal/expense"
	"github.com/rmaldonado/obrix/internal/ledger"
	"github.com/rmaldonado/obrix/internal/payment"
	"github.com/rmaldonado/obrix/internal/project"
	"github.com/rmaldonado/obrix/internal/state"
	"github.com/rmaldonado/obrix/internal/timeentry"
)

type mocks struct {
	projects  *ledger.MockProjectStore
	employees *ledger.MockEmployeeStore
	expenses  *ledger.MockExpenseStore
	times     *ledger.MockTimeEntryStore
	payments  *ledger.MockPaymentStore
}

func newLedger(t *testing.T) (*ledger.Ledger, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		projects:  ledger.NewMockProjectStore(ctrl),
		employees: ledger.NewMockEmployeeStore(ctrl),
		expenses:  ledger.NewMockExpenseStore(ctrl),
		times:     ledger.NewMockTimeEntryStore(ctrl),
		payments:  ledger.NewMockPaymentStore(ctrl),
	}

	return ledger.New(m.projects, m.employees, m.expenses, m.times, m.payments), m
}

func TestRegisterTime_CreditsBalance(t *testing.T) {
	l, m := newLedger(t)

	projectID := uuid.New()
	employeeID := uuid.New()
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	m.times.EXPECT().
		Create(gomock.Any(), timeentry.CreateParams{
			ProjectID:  projectID,
			EmployeeID: employeeID,
			Date:       date,
			Hours:      8,
			Amount:     50_000,
			Notes:      "zanjeo",
		}).
		Return(timeentry.TimeEntry{ID: uuid.New(), Amount: 50_000}, nil)

	m.employees.EXPECT().
		GetByID(gomock.Any(), employeeID).
		Return(employee.Employee{ID: employeeID, SaldoActual: 10_000}, nil)

	m.employees.EXPECT().
		Update(gomock.Any(), employeeID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, params employee.UpdateParams) (employee.Employee, error) {
			require.NotNil(t, params.SaldoActual)
			assert.Equal(t, int64(60_000), *params.SaldoActual)
			return employee.Employee{}, nil
		})

	m.times.EXPECT().
		ListByProject(gomock.Any(), projectID, 1, 0).
		Return(state.Page[timeentry.TimeEntry]{}, nil)

	m.employees.EXPECT().
		List(gomock.Any(), 1, 0).
		Return(state.Page[employee.Employee]{}, nil)

	entry, err := l.RegisterTime(context.Background(), ledger.RegisterTimeParams{
		ProjectID:  projectID,
		EmployeeID: employeeID,
		Date:       date,
		Hours:      8,
		Amount:     50_000,
		Notes:      "zanjeo",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50_000), entry.Amount)
}

func TestRegisterTime_ZeroAmountLeavesBalance(t *testing.T) {
	l, m := newLedger(t)

	projectID := uuid.New()
	employeeID := uuid.New()

	// No GetByID and no Update may reach the employee store: a zero-amount
	// entry records the day without moving the balance.
	m.times.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(timeentry.TimeEntry{ID: uuid.New()}, nil)
	m.times.EXPECT().
		ListByProject(gomock.Any(), projectID, 1, 0).
		Return(state.Page[timeentry.TimeEntry]{}, nil)
	m.employees.EXPECT().
		List(gomock.Any(), 1, 0).
		Return(state.Page[employee.Employee]{}, nil)

	_, err := l.RegisterTime(context.Background(), ledger.RegisterTimeParams{
		ProjectID:  projectID,
		EmployeeID: employeeID,
		Hours:      4,
		Amount:     0,
	})
	require.NoError(t, err)
}

func TestEditTime_AppliesDelta(t *testing.T) {
	l, m := newLedger(t)

	projectID := uuid.New()
	employeeID := uuid.New()
	entry := timeentry.TimeEntry{
		ID:         uuid.New(),
		ProjectID:  projectID,
		EmployeeID: employeeID,
		Hours:      8,
		Amount:     50_000,
	}

	m.times.EXPECT().
		Update(gomock.Any(), entry.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, params timeentry.UpdateParams) (timeentry.TimeEntry, error) {
			require.NotNil(t, params.Amount)
			assert.Equal(t, int64(30_000), *params.Amount)
			return timeentry.TimeEntry{}, nil
		})

	m.employees.EXPECT().
		GetByID(gomock.Any(), employeeID).
		Return(employee.Employee{ID: employeeID, SaldoActual: 10_000}, nil)

	// 10_000 + (30_000 - 50_000): edits move by the delta and may go negative.
	m.employees.EXPECT().
		Update(gomock.Any(), employeeID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, params employee.UpdateParams) (employee.Employee, error) {
			require.NotNil(t, params.SaldoActual)
			assert.Equal(t, int64(-10_000), *params.SaldoActual)
			return employee.Employee{}, nil
		})

	m.times.EXPECT().
		ListByProject(gomock.Any(), projectID, 1, 0).
		Return(state.Page[timeentry.TimeEntry]{}, nil)
	m.employees.EXPECT().
		List(gomock.Any(), 1, 0).
		Return(state.Page[employee.Employee]{}, nil)

	err := l.EditTime(context.Background(), ledger.EditTimeParams{
		Entry:  entry,
		Hours:  5,
		Amount: 30_000,
	})
	require.NoError(t, err)
}

func TestEditTime_UnchangedAmountSkipsBalance(t *testing.T) {
	l, m := newLedger(t)

	entry := timeentry.TimeEntry{
		ID:         uuid.New(),
		ProjectID:  uuid.New(),
		EmployeeID: uuid.New(),
		Hours:      8,
		Amount:     50_000,
	}

	m.times.EXPECT().
		Update(gomock.Any(), entry.ID, gomock.Any()).
		Return(timeentry.TimeEntry{}, nil)
	m.times.EXPECT().
		ListByProject(gomock.Any(), entry.ProjectID, 1, 0).
		Return(state.Page[timeentry.TimeEntry]{}, nil)
	m.employees.EXPECT().
		List(gomock.Any(), 1, 0).
		Return(state.Page[employee.Employee]{}, nil)

	err := l.EditTime(context.Background(), ledger.EditTimeParams{
		Entry:  entry,
		Hours:  6,
		Amount: 50_000,
	})
	require.NoError(t, err)
}

func TestDeleteTime_ClampsBalanceAtZero(t *testing.T) {
	l, m := newLedger(t)

	employeeID := uuid.New()
	entry := timeentry.TimeEntry{
		ID:         uuid.New(),
		ProjectID:  uuid.New(),
		EmployeeID: employeeID,
		Amount:     50_000,
	}

	m.times.EXPECT().Remove(gomock.Any(), entry.ID).Return(nil)

	m.employees.EXPECT().
		GetByID(gomock.Any(), employeeID).
		Return(employee.Employee{ID: employeeID, SaldoActual: 30_000}, nil)

	m.employees.EXPECT().
		Update(gomock.Any(), employeeID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, params employee.UpdateParams) (employee.Employee, error) {
			require.NotNil(t, params.SaldoActual)
			assert.Equal(t, int64(0), *params.SaldoActual)
			return employee.Employee{}, nil
		})

	m.times.EXPECT().
		ListByProject(gomock.Any(), entry.ProjectID, 1, 0).
		Return(state.Page[timeentry.TimeEntry]{}, nil)
	m.employees.EXPECT().
		List(gomock.Any(), 1, 0).
		Return(state.Page[employee.Employee]{}, nil)

	err := l.DeleteTime(context.Background(), entry)
	require.NoError(t, err)
}

func TestRegisterPayment_RejectsNonPositiveAmount(t *testing.T) {
	for _, amount := range []int64{0, -1_000} {
		l, _ := newLedger(t)

		_, err := l.RegisterPayment(context.Background(), ledger.RegisterPaymentParams{
			EmployeeID: uuid.New(),
			Type:       payment.TypePago,
			Amount:     amount,
		})
		assert.ErrorIs(t, err, payment.ErrZeroAmount)
	}
}

func TestRegisterPayment_DebitsWithoutFloor(t *testing.T) {
	l, m := newLedger(t)

	employeeID := uuid.New()
	date := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)

	m.payments.EXPECT().
		Create(gomock.Any(), payment.CreateParams{
			EmployeeID: employeeID,
			Date:       date,
			Type:       payment.TypeAdelanto,
			Amount:     50_000,
		}).
		Return(payment.Payment{ID: uuid.New(), Amount: 50_000}, nil)

	m.employees.EXPECT().
		GetByID(gomock.Any(), employeeID).
		Return(employee.Employee{ID: employeeID, SaldoActual: 30_000}, nil)

	// Overpaying leaves the balance negative; only DeleteTime clamps.
	m.employees.EXPECT().
		Update(gomock.Any(), employeeID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, params employee.UpdateParams) (employee.Employee, error) {
			require.NotNil(t, params.SaldoActual)
			assert.Equal(t, int64(-20_000), *params.SaldoActual)
			return employee.Employee{}, nil
		})

	m.payments.EXPECT().
		ListByEmployee(gomock.Any(), employeeID, nil, 1, 0).
		Return(state.Page[payment.Payment]{}, nil)

	p, err := l.RegisterPayment(context.Background(), ledger.RegisterPaymentParams{
		EmployeeID: employeeID,
		Date:       date,
		Type:       payment.TypeAdelanto,
		Amount:     50_000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50_000), p.Amount)
}

func TestDeletePayment_LeavesBalanceUntouched(t *testing.T) {
	l, m := newLedger(t)

	p := payment.Payment{ID: uuid.New(), EmployeeID: uuid.New(), Amount: 50_000}

	// The employee store gets no calls at all: removing a payment record does
	// not credit the amount back.
	m.payments.EXPECT().Remove(gomock.Any(), p.ID).Return(nil)
	m.payments.EXPECT().
		ListByEmployee(gomock.Any(), p.EmployeeID, nil, 1, 0).
		Return(state.Page[payment.Payment]{}, nil)

	err := l.DeletePayment(context.Background(), p)
	require.NoError(t, err)
}

func TestAddBudget(t *testing.T) {
	t.Run("RaisesBudget", func(t *testing.T) {
		l, m := newLedger(t)

		projectID := uuid.New()

		m.projects.EXPECT().
			GetByID(gomock.Any(), projectID).
			Return(project.Project{ID: projectID, Budget: 100_000}, nil)

		m.projects.EXPECT().
			Update(gomock.Any(), projectID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, params project.UpdateParams) (project.Project, error) {
				require.NotNil(t, params.Budget)
				assert.Equal(t, int64(125_000), *params.Budget)
				return project.Project{}, nil
			})

		m.projects.EXPECT().
			List(gomock.Any(), 1, 0).
			Return(state.Page[project.Project]{}, nil)

		err := l.AddBudget(context.Background(), projectID, 25_000)
		require.NoError(t, err)
	})

	t.Run("ZeroIsNoOp", func(t *testing.T) {
		l, _ := newLedger(t)

		err := l.AddBudget(context.Background(), uuid.New(), 0)
		require.NoError(t, err)
	})
}

func TestRecordCounterInvoice(t *testing.T) {
	l, m := newLedger(t)

	projectID := uuid.New()
	date := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	m.expenses.EXPECT().
		Create(gomock.Any(), expense.CreateParams{
			ProjectID:  projectID,
			Concept:    "Materiales eléctricos",
			Category:   expense.CategoryCounterInvoice,
			Amount:     40_000,
			Date:       date,
			InvoiceRef: "FC-0042",
		}).
		Return(expense.Expense{ID: uuid.New(), Amount: 40_000}, nil)

	m.projects.EXPECT().
		GetByID(gomock.Any(), projectID).
		Return(project.Project{ID: projectID, Budget: 100_000}, nil)

	// The pass-through cost raises the budget by the same amount.
	m.projects.EXPECT().
		Update(gomock.Any(), projectID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, params project.UpdateParams) (project.Project, error) {
			require.NotNil(t, params.Budget)
			assert.Equal(t, int64(140_000), *params.Budget)
			return project.Project{}, nil
		})

	m.expenses.EXPECT().
		ListByProject(gomock.Any(), projectID, 1, 0).
		Return(state.Page[expense.Expense]{}, nil)
	m.projects.EXPECT().
		List(gomock.Any(), 1, 0).
		Return(state.Page[project.Project]{}, nil)

	exp, err := l.RecordCounterInvoice(context.Background(), ledger.CounterInvoiceParams{
		ProjectID:   projectID,
		Amount:      40_000,
		Description: "Materiales eléctricos",
		Ref:         "FC-0042",
		Date:        date,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(40_000), exp.Amount)
}

func TestPayCounterInvoice(t *testing.T) {
	l, m := newLedger(t)

	exp := expense.Expense{
		ID:        uuid.New(),
		ProjectID: uuid.New(),
		Category:  expense.CategoryCounterInvoice,
		Amount:    40_000,
	}

	m.expenses.EXPECT().
		Update(gomock.Any(), exp.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, params expense.UpdateParams) (expense.Expense, error) {
			require.NotNil(t, params.Category)
			assert.Equal(t, expense.CategoryCounterInvoicePaid, *params.Category)
			assert.Nil(t, params.Amount)
			return expense.Expense{}, nil
		})

	m.expenses.EXPECT().
		ListByProject(gomock.Any(), exp.ProjectID, 1, 0).
		Return(state.Page[expense.Expense]{}, nil)
	m.projects.EXPECT().
		List(gomock.Any(), 1, 0).
		Return(state.Page[project.Project]{}, nil)

	err := l.PayCounterInvoice(context.Background(), exp)
	require.NoError(t, err)
}

// TestBalanceLifecycle walks one employee through a full cycle: a worked day
// credits 500, editing it down to 300 debits the 200 delta, a 300 payment
// clears the balance, and deleting that payment leaves it at zero.
func TestBalanceLifecycle(t *testing.T) {
	l, m := newLedger(t)

	projectID := uuid.New()
	employeeID := uuid.New()

	var saldo int64

	m.employees.EXPECT().
		GetByID(gomock.Any(), employeeID).
		DoAndReturn(func(_ context.Context, _ uuid.UUID) (employee.Employee, error) {
			return employee.Employee{ID: employeeID, SaldoActual: saldo}, nil
		}).
		AnyTimes()

	m.employees.EXPECT().
		Update(gomock.Any(), employeeID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, params employee.UpdateParams) (employee.Employee, error) {
			require.NotNil(t, params.SaldoActual)
			saldo = *params.SaldoActual
			return employee.Employee{ID: employeeID, SaldoActual: saldo}, nil
		}).
		AnyTimes()

	m.employees.EXPECT().
		List(gomock.Any(), 1, 0).
		Return(state.Page[employee.Employee]{}, nil).
		AnyTimes()
	m.times.EXPECT().
		ListByProject(gomock.Any(), projectID, 1, 0).
		Return(state.Page[timeentry.TimeEntry]{}, nil).
		AnyTimes()
	m.payments.EXPECT().
		ListByEmployee(gomock.Any(), employeeID, nil, 1, 0).
		Return(state.Page[payment.Payment]{}, nil).
		AnyTimes()

	entryID := uuid.New()

	m.times.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(timeentry.TimeEntry{ID: entryID, ProjectID: projectID, EmployeeID: employeeID, Amount: 500_00}, nil)

	entry, err := l.RegisterTime(context.Background(), ledger.RegisterTimeParams{
		ProjectID:  projectID,
		EmployeeID: employeeID,
		Hours:      8,
		Amount:     500_00,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(500_00), saldo)

	m.times.EXPECT().
		Update(gomock.Any(), entryID, gomock.Any()).
		Return(timeentry.TimeEntry{}, nil)

	err = l.EditTime(context.Background(), ledger.EditTimeParams{
		Entry:  entry,
		Hours:  8,
		Amount: 300_00,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(300_00), saldo)

	paymentID := uuid.New()

	m.payments.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(payment.Payment{ID: paymentID, EmployeeID: employeeID, Amount: 300_00}, nil)

	p, err := l.RegisterPayment(context.Background(), ledger.RegisterPaymentParams{
		EmployeeID: employeeID,
		Type:       payment.TypePago,
		Amount:     300_00,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), saldo)

	m.payments.EXPECT().Remove(gomock.Any(), paymentID).Return(nil)

	require.NoError(t, l.DeletePayment(context.Background(), p))
	assert.Equal(t, int64(0), saldo)
}

func TestRegisterTime_CreateErrorStops(t *testing.T) {
	l, m := newLedger(t)

	m.times.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(timeentry.TimeEntry{}, errors.New("gateway down"))

	_, err := l.RegisterTime(context.Background(), ledger.RegisterTimeParams{
		ProjectID:  uuid.New(),
		EmployeeID: uuid.New(),
		Amount:     50_000,
	})
	assert.Error(t, err)
}
