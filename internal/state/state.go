package state

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/rmaldonado/obrix/internal/client"
	"github.com/rmaldonado/obrix/internal/employee"
	"github.com/rmaldonado/obrix/internal/expense"
	"github.com/rmaldonado/obrix/internal/gateway"
	"github.com/rmaldonado/obrix/internal/payment"
	"github.com/rmaldonado/obrix/internal/project"
	"github.com/rmaldonado/obrix/internal/timeentry"
)

// Default page sizes per entity slice.
const (
	projectPageSize  = 6
	employeePageSize = 10
	clientPageSize   = 10
	expensePageSize  = 10
	timePageSize     = 50
	paymentPageSize  = 10
)

// AppState is the application state container: one store per entity slice,
// passed explicitly to whoever needs it. There is no package-level singleton.
type AppState struct {
	Projects  *Projects
	Employees *Employees
	Clients   *Clients
	Expenses  *Expenses
	Times     *Times
	Payments  *Payments
}

func New(gw *gateway.Client) *AppState {
	return &AppState{
		Projects: &Projects{NewStore(gw, project.Collection, projectPageSize, "id", "desc",
			func(p project.Project) uuid.UUID { return p.ID })},
		Employees: &Employees{NewStore(gw, employee.Collection, employeePageSize, "lastName", "asc",
			func(e employee.Employee) uuid.UUID { return e.ID })},
		Clients: &Clients{NewStore(gw, client.Collection, clientPageSize, "lastName", "asc",
			func(c client.Client) uuid.UUID { return c.ID })},
		Expenses: &Expenses{NewStore(gw, expense.Collection, expensePageSize, "date", "desc",
			func(e expense.Expense) uuid.UUID { return e.ID })},
		Times: &Times{NewStore(gw, timeentry.Collection, timePageSize, "date", "desc",
			func(t timeentry.TimeEntry) uuid.UUID { return t.ID })},
		Payments: &Payments{NewStore(gw, payment.Collection, paymentPageSize, "date", "desc",
			func(p payment.Payment) uuid.UUID { return p.ID })},
	}
}

// Projects wraps the generic store with typed payloads.
type Projects struct {
	*Store[project.Project]
}

func (s *Projects) List(ctx context.Context, page, limit int) (Page[project.Project], error) {
	return s.Store.List(ctx, page, limit, nil)
}

func (s *Projects) Create(ctx context.Context, params project.CreateParams) (project.Project, error) {
	return s.Store.Create(ctx, params)
}

func (s *Projects) Update(ctx context.Context, id uuid.UUID, params project.UpdateParams) (project.Project, error) {
	return s.Store.Update(ctx, id, params)
}

type Employees struct {
	*Store[employee.Employee]
}

func (s *Employees) List(ctx context.Context, page, limit int) (Page[employee.Employee], error) {
	return s.Store.List(ctx, page, limit, nil)
}

func (s *Employees) Create(ctx context.Context, params employee.CreateParams) (employee.Employee, error) {
	return s.Store.Create(ctx, params)
}

func (s *Employees) Update(ctx context.Context, id uuid.UUID, params employee.UpdateParams) (employee.Employee, error) {
	return s.Store.Update(ctx, id, params)
}

type Clients struct {
	*Store[client.Client]
}

func (s *Clients) List(ctx context.Context, page, limit int) (Page[client.Client], error) {
	return s.Store.List(ctx, page, limit, nil)
}

func (s *Clients) Create(ctx context.Context, params client.CreateParams) (client.Client, error) {
	return s.Store.Create(ctx, params)
}

func (s *Clients) Update(ctx context.Context, id uuid.UUID, params client.UpdateParams) (client.Client, error) {
	return s.Store.Update(ctx, id, params)
}

type Expenses struct {
	*Store[expense.Expense]
}

func (s *Expenses) ListByProject(ctx context.Context, projectID uuid.UUID, page, limit int) (Page[expense.Expense], error) {
	return s.Store.List(ctx, page, limit, url.Values{"projectId": {projectID.String()}})
}

func (s *Expenses) Create(ctx context.Context, params expense.CreateParams) (expense.Expense, error) {
	return s.Store.Create(ctx, params)
}

func (s *Expenses) Update(ctx context.Context, id uuid.UUID, params expense.UpdateParams) (expense.Expense, error) {
	return s.Store.Update(ctx, id, params)
}

type Times struct {
	*Store[timeentry.TimeEntry]
}

func (s *Times) ListByProject(ctx context.Context, projectID uuid.UUID, page, limit int) (Page[timeentry.TimeEntry], error) {
	return s.Store.List(ctx, page, limit, url.Values{"projectId": {projectID.String()}})
}

// ListByEmployee filters by employee and an optional inclusive date range.
func (s *Times) ListByEmployee(ctx context.Context, employeeID uuid.UUID, from, to *time.Time) (Page[timeentry.TimeEntry], error) {
	filters := url.Values{"employeeId": {employeeID.String()}}

	if from != nil {
		filters.Set("date_gte", from.Format(time.DateOnly))
	}

	if to != nil {
		filters.Set("date_lte", to.Format(time.DateOnly))
	}

	return s.Store.List(ctx, 1, 0, filters)
}

func (s *Times) Create(ctx context.Context, params timeentry.CreateParams) (timeentry.TimeEntry, error) {
	return s.Store.Create(ctx, params)
}

func (s *Times) Update(ctx context.Context, id uuid.UUID, params timeentry.UpdateParams) (timeentry.TimeEntry, error) {
	return s.Store.Update(ctx, id, params)
}

type Payments struct {
	*Store[payment.Payment]
}

// ListByEmployee filters the payment history of one employee, optionally
// narrowed to a project.
func (s *Payments) ListByEmployee(ctx context.Context, employeeID uuid.UUID, projectID *uuid.UUID, page, limit int) (Page[payment.Payment], error) {
	filters := url.Values{"employeeId": {employeeID.String()}}

	if projectID != nil {
		filters.Set("projectId", projectID.String())
	}

	return s.Store.List(ctx, page, limit, filters)
}

func (s *Payments) Create(ctx context.Context, params payment.CreateParams) (payment.Payment, error) {
	return s.Store.Create(ctx, params)
}
