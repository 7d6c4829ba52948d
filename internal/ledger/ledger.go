// Package ledger holds the cross-entity reconciliation rules: every mutation
// that must reflect into an employee's running balance or a project's budget
// goes through one of the functions here, so the multi-step contracts live in
// one place instead of scattered across UI handlers.
//
// There is no distributed transaction. Each rule runs its steps in order and
// stops at the first failure; a mutation already issued stays committed on
// the gateway, and re-fetching the affected lists exposes the true state.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rmaldonado/obrix/internal/employee"
	"github.com/rmaldonado/obrix/internal/expense"
	"github.com/rmaldonado/obrix/internal/payment"
	"github.com/rmaldonado/obrix/internal/project"
	"github.com/rmaldonado/obrix/internal/state"
	"github.com/rmaldonado/obrix/internal/timeentry"
)

//go:generate mockgen -source=ledger.go -destination=ledger_mock.go -package=ledger

type ProjectStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (project.Project, error)
	Update(ctx context.Context, id uuid.UUID, params project.UpdateParams) (project.Project, error)
	List(ctx context.Context, page, limit int) (state.Page[project.Project], error)
}

type EmployeeStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (employee.Employee, error)
	Update(ctx context.Context, id uuid.UUID, params employee.UpdateParams) (employee.Employee, error)
	List(ctx context.Context, page, limit int) (state.Page[employee.Employee], error)
}

type ExpenseStore interface {
	Create(ctx context.Context, params expense.CreateParams) (expense.Expense, error)
	Update(ctx context.Context, id uuid.UUID, params expense.UpdateParams) (expense.Expense, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, page, limit int) (state.Page[expense.Expense], error)
}

type TimeEntryStore interface {
	Create(ctx context.Context, params timeentry.CreateParams) (timeentry.TimeEntry, error)
	Update(ctx context.Context, id uuid.UUID, params timeentry.UpdateParams) (timeentry.TimeEntry, error)
	Remove(ctx context.Context, id uuid.UUID) error
	ListByProject(ctx context.Context, projectID uuid.UUID, page, limit int) (state.Page[timeentry.TimeEntry], error)
}

type PaymentStore interface {
	Create(ctx context.Context, params payment.CreateParams) (payment.Payment, error)
	Remove(ctx context.Context, id uuid.UUID) error
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, projectID *uuid.UUID, page, limit int) (state.Page[payment.Payment], error)
}

// Ledger binds the reconciliation rules to explicit store handles.
type Ledger struct {
	projects  ProjectStore
	employees EmployeeStore
	expenses  ExpenseStore
	times     TimeEntryStore
	payments  PaymentStore
}

func New(projects ProjectStore, employees EmployeeStore, expenses ExpenseStore, times TimeEntryStore, payments PaymentStore) *Ledger {
	return &Ledger{
		projects:  projects,
		employees: employees,
		expenses:  expenses,
		times:     times,
		payments:  payments,
	}
}

// FromState wires a Ledger over an application state container.
func FromState(st *state.AppState) *Ledger {
	return New(st.Projects, st.Employees, st.Expenses, st.Times, st.Payments)
}

type RegisterTimeParams struct {
	ProjectID  uuid.UUID
	EmployeeID uuid.UUID
	Date       time.Time
	Hours      float64
	Amount     int64 // the day's pay, centavos
	Notes      string
}

// RegisterTime creates a time entry and credits the employee's balance by the
// entry amount. A zero-amount entry never touches the balance: no PATCH is
// issued at all. Afterwards the project's time entries and the employee list
// are re-fetched.
func (l *Ledger) RegisterTime(ctx context.Context, params RegisterTimeParams) (timeentry.TimeEntry, error) {
	entry, err := l.times.Create(ctx, timeentry.CreateParams{
		ProjectID:  params.ProjectID,
		EmployeeID: params.EmployeeID,
		Date:       params.Date,
		Hours:      params.Hours,
		Amount:     params.Amount,
		Notes:      params.Notes,
	})
	if err != nil {
		return timeentry.TimeEntry{}, err
	}

	if params.Amount > 0 {
		emp, err := l.employees.GetByID(ctx, params.EmployeeID)
		if err != nil {
			return entry, err
		}

		saldo := emp.SaldoActual + params.Amount
		if _, err := l.employees.Update(ctx, emp.ID, employee.UpdateParams{SaldoActual: &saldo}); err != nil {
			return entry, err
		}
	}

	if _, err := l.times.ListByProject(ctx, params.ProjectID, 1, 0); err != nil {
		return entry, err
	}

	if _, err := l.employees.List(ctx, 1, 0); err != nil {
		return entry, err
	}

	return entry, nil
}

type EditTimeParams struct {
	Entry  timeentry.TimeEntry // state held before the edit
	Hours  float64
	Amount int64
}

// EditTime patches a time entry and moves the employee balance by the delta
// between the new and the previous amount, never by the new amount outright.
// The delta may be negative.
func (l *Ledger) EditTime(ctx context.Context, params EditTimeParams) error {
	delta := params.Amount - params.Entry.Amount

	if _, err := l.times.Update(ctx, params.Entry.ID, timeentry.UpdateParams{
		Hours:  &params.Hours,
		Amount: &params.Amount,
	}); err != nil {
		return err
	}

	if delta != 0 {
		emp, err := l.employees.GetByID(ctx, params.Entry.EmployeeID)
		if err != nil {
			return err
		}

		saldo := emp.SaldoActual + delta
		if _, err := l.employees.Update(ctx, emp.ID, employee.UpdateParams{SaldoActual: &saldo}); err != nil {
			return err
		}
	}

	if _, err := l.times.ListByProject(ctx, params.Entry.ProjectID, 1, 0); err != nil {
		return err
	}

	if _, err := l.employees.List(ctx, 1, 0); err != nil {
		return err
	}

	return nil
}

// DeleteTime deletes a time entry and debits the employee balance by the
// entry's amount, clamped at zero. The clamp applies only to deletion;
// edits and payments may drive the balance negative.
func (l *Ledger) DeleteTime(ctx context.Context, entry timeentry.TimeEntry) error {
	if err := l.times.Remove(ctx, entry.ID); err != nil {
		return err
	}

	emp, err := l.employees.GetByID(ctx, entry.EmployeeID)
	if err != nil {
		return err
	}

	saldo := emp.SaldoActual - entry.Amount
	if saldo < 0 {
		saldo = 0
	}

	if _, err := l.employees.Update(ctx, emp.ID, employee.UpdateParams{SaldoActual: &saldo}); err != nil {
		return err
	}

	if _, err := l.times.ListByProject(ctx, entry.ProjectID, 1, 0); err != nil {
		return err
	}

	if _, err := l.employees.List(ctx, 1, 0); err != nil {
		return err
	}

	return nil
}

type RegisterPaymentParams struct {
	EmployeeID uuid.UUID
	ProjectID  *uuid.UUID
	Date       time.Time
	Type       payment.Type
	Amount     int64
	Notes      string
}

// RegisterPayment creates a payment and debits the employee balance by its
// amount. A zero amount is rejected before any request is sent. No floor is
// applied: an overpayment leaves the balance negative.
func (l *Ledger) RegisterPayment(ctx context.Context, params RegisterPaymentParams) (payment.Payment, error) {
	if params.Amount <= 0 {
		return payment.Payment{}, payment.ErrZeroAmount
	}

	p, err := l.payments.Create(ctx, payment.CreateParams{
		EmployeeID: params.EmployeeID,
		ProjectID:  params.ProjectID,
		Date:       params.Date,
		Type:       params.Type,
		Amount:     params.Amount,
		Notes:      params.Notes,
	})
	if err != nil {
		return payment.Payment{}, err
	}

	emp, err := l.employees.GetByID(ctx, params.EmployeeID)
	if err != nil {
		return p, err
	}

	saldo := emp.SaldoActual - params.Amount
	if _, err := l.employees.Update(ctx, emp.ID, employee.UpdateParams{SaldoActual: &saldo}); err != nil {
		return p, err
	}

	if _, err := l.payments.ListByEmployee(ctx, params.EmployeeID, nil, 1, 0); err != nil {
		return p, err
	}

	return p, nil
}

// DeletePayment removes the payment record only. The employee balance is
// deliberately left untouched, asymmetric with DeleteTime.
func (l *Ledger) DeletePayment(ctx context.Context, p payment.Payment) error {
	if err := l.payments.Remove(ctx, p.ID); err != nil {
		return err
	}

	if _, err := l.payments.ListByEmployee(ctx, p.EmployeeID, nil, 1, 0); err != nil {
		return err
	}

	return nil
}

// AddBudget raises a project's budget by the given amount. A zero amount is a
// no-op: no PATCH is issued.
func (l *Ledger) AddBudget(ctx context.Context, projectID uuid.UUID, amount int64) error {
	if amount == 0 {
		return nil
	}

	proj, err := l.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}

	budget := proj.Budget + amount
	if _, err := l.projects.Update(ctx, projectID, project.UpdateParams{Budget: &budget}); err != nil {
		return err
	}

	if _, err := l.projects.List(ctx, 1, 0); err != nil {
		return err
	}

	return nil
}

type CounterInvoiceParams struct {
	ProjectID   uuid.UUID
	Amount      int64
	Description string
	Ref         string
	Date        time.Time
}

// RecordCounterInvoice creates a Contrafactura expense and raises the project
// budget by the same amount: the cost is passed through to the client, so it
// is simultaneously an expense and a budget addition. Both the project's
// expense list and the project list are re-fetched afterwards.
func (l *Ledger) RecordCounterInvoice(ctx context.Context, params CounterInvoiceParams) (expense.Expense, error) {
	exp, err := l.expenses.Create(ctx, expense.CreateParams{
		ProjectID:  params.ProjectID,
		Concept:    params.Description,
		Category:   expense.CategoryCounterInvoice,
		Amount:     params.Amount,
		Date:       params.Date,
		InvoiceRef: params.Ref,
	})
	if err != nil {
		return expense.Expense{}, err
	}

	proj, err := l.projects.GetByID(ctx, params.ProjectID)
	if err != nil {
		return exp, err
	}

	budget := proj.Budget + params.Amount
	if _, err := l.projects.Update(ctx, params.ProjectID, project.UpdateParams{Budget: &budget}); err != nil {
		return exp, err
	}

	if _, err := l.expenses.ListByProject(ctx, params.ProjectID, 1, 0); err != nil {
		return exp, err
	}

	if _, err := l.projects.List(ctx, 1, 0); err != nil {
		return exp, err
	}

	return exp, nil
}

// PayCounterInvoice reclassifies a Contrafactura expense as paid. Only the
// category changes; amount, project and date stay as they are. There is no
// separate paid flag.
func (l *Ledger) PayCounterInvoice(ctx context.Context, exp expense.Expense) error {
	paid := expense.CategoryCounterInvoicePaid
	if _, err := l.expenses.Update(ctx, exp.ID, expense.UpdateParams{Category: &paid}); err != nil {
		return err
	}

	if _, err := l.expenses.ListByProject(ctx, exp.ProjectID, 1, 0); err != nil {
		return err
	}

	if _, err := l.projects.List(ctx, 1, 0); err != nil {
		return err
	}

	return nil
}
