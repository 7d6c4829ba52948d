package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/rmaldonado/obrix/internal/employee"
	"github.com/rmaldonado/obrix/internal/ledger"
	"github.com/rmaldonado/obrix/internal/payment"
	"github.com/rmaldonado/obrix/internal/state"
	"github.com/rmaldonado/obrix/internal/timeentry"
)

type payrollState int

const (
	payrollStateBrowse payrollState = iota
	payrollStatePay
	payrollStateTimes
	payrollStateEditTime
)

type PayrollModel struct {
	CommonModel
	st     *state.AppState
	ledger *ledger.Ledger

	state     payrollState
	table     table.Model
	timeTable table.Model
	employees []employee.Employee
	times     []timeentry.TimeEntry
	page      int
	pages     int
	form      *huh.Form

	selected employee.Employee

	// timesFrom/timesTo narrow the times list; nil means no date filter.
	timesFrom *time.Time
	timesTo   *time.Time

	loading bool
	err     error
	status  string

	// Form bindings
	formAmount string
	formType   string
	formDate   string
	formNotes  string
	formHours  string
}

func NewPayrollModel(st *state.AppState, lg *ledger.Ledger) PayrollModel {
	columns := []table.Column{
		{Title: "Apellido", Width: 18},
		{Title: "Nombre", Width: 16},
		{Title: "Especialidad", Width: 18},
		{Title: "Estado", Width: 10},
		{Title: "Saldo", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	timeColumns := []table.Column{
		{Title: "Fecha", Width: 12},
		{Title: "Horas", Width: 8},
		{Title: "Jornal", Width: 16},
		{Title: "Notas", Width: 30},
	}

	tt := table.New(
		table.WithColumns(timeColumns),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	tt.SetStyles(s)

	return PayrollModel{
		st:        st,
		ledger:    lg,
		table:     t,
		timeTable: tt,
		page:      1,
		pages:     1,
	}
}

func (m PayrollModel) Title() string { return "Personal" }
func (m PayrollModel) ShortHelp() string {
	switch m.state {
	case payrollStatePay, payrollStateEditTime:
		return "Navigate form | Esc: cancel"
	case payrollStateTimes:
		return "Esc: back | e: edit | d: delete | f: mes actual | r: refresh"
	}

	return "Esc: back | p: pagar | t: tiempos | n/→ ←: page | r: refresh"
}

func (m PayrollModel) Init() tea.Cmd {
	return m.loadEmployeesCmd(m.page)
}

type payrollLoadedMsg struct {
	page state.Page[employee.Employee]
	err  error
}

type payrollTimesLoadedMsg struct {
	times []timeentry.TimeEntry
	err   error
}

type payrollMutatedMsg struct {
	status string
	err    error
}

func (m PayrollModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case payrollLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.employees = msg.page.Items
		m.page = msg.page.Page
		m.pages = msg.page.TotalPages
		m.refreshTable()

		return m, nil

	case payrollTimesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.times = msg.times
		m.refreshTimeTable()

		return m, nil

	case payrollMutatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		m.form = nil

		// A balance mutation invalidates both tables.
		if m.state == payrollStateEditTime {
			m.state = payrollStateTimes
			return m, tea.Batch(m.loadTimesCmd(), m.loadEmployeesCmd(m.page))
		}

		m.state = payrollStateBrowse
		m.table.Focus()

		return m, m.loadEmployeesCmd(m.page)

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		m.timeTable.SetHeight(msg.Height - 12)

		return m, nil
	}

	switch m.state {
	case payrollStateBrowse:
		return m.updateBrowse(msg)
	case payrollStateTimes:
		return m.updateTimes(msg)
	case payrollStatePay, payrollStateEditTime:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m PayrollModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadEmployeesCmd(m.page)
		case "n", "right":
			if m.page < m.pages {
				m.loading = true
				return m, m.loadEmployeesCmd(m.page + 1)
			}

			return m, nil
		case "left":
			if m.page > 1 {
				m.loading = true
				return m, m.loadEmployeesCmd(m.page - 1)
			}

			return m, nil
		case "p":
			return m.enterPayForm()
		case "t":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.employees) {
				return m, nil
			}

			m.selected = m.employees[idx]
			m.state = payrollStateTimes
			m.loading = true
			m.timesFrom = nil
			m.timesTo = nil
			m.table.Blur()
			m.timeTable.Focus()

			return m, m.loadTimesCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m PayrollModel) enterPayForm() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.employees) {
		return m, nil
	}

	m.selected = m.employees[idx]
	m.formAmount = ""
	m.formType = string(payment.TypePago)
	m.formDate = FormatDate(time.Now())
	m.formNotes = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("amount").Title("Monto").Placeholder("25000,00").
				Value(&m.formAmount).
				Validate(func(s string) error {
					amount, err := ParseAmount(s)
					if err != nil {
						return err
					}

					if amount <= 0 {
						return fmt.Errorf("el monto debe ser mayor a cero")
					}

					return nil
				}),
			huh.NewSelect[string]().Key("type").Title("Tipo").
				Options(
					huh.NewOption("Pago", string(payment.TypePago)),
					huh.NewOption("Adelanto", string(payment.TypeAdelanto)),
				).
				Value(&m.formType),
			huh.NewInput().Key("date").Title("Fecha").Value(&m.formDate).Validate(validateDate),
			huh.NewInput().Key("notes").Title("Notas").Value(&m.formNotes),
		),
	).WithWidth(46).WithShowHelp(false)

	m.state = payrollStatePay
	m.table.Blur()

	return m, m.form.Init()
}

func (m PayrollModel) updateTimes(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.state = payrollStateBrowse
			m.timeTable.Blur()
			m.table.Focus()

			return m, nil
		case "r":
			m.loading = true
			return m, m.loadTimesCmd()
		case "f":
			if m.timesFrom != nil {
				m.timesFrom = nil
				m.timesTo = nil
			} else {
				from, to := monthRange(time.Now())
				m.timesFrom = &from
				m.timesTo = &to
			}

			m.loading = true

			return m, m.loadTimesCmd()
		case "e":
			return m.enterEditTimeForm()
		case "d":
			idx := m.timeTable.Cursor()
			if idx < 0 || idx >= len(m.times) {
				return m, nil
			}

			entry := m.times[idx]

			return m, func() tea.Msg {
				ctx, cancel := GwCtx()
				defer cancel()

				if err := m.ledger.DeleteTime(ctx, entry); err != nil {
					return payrollMutatedMsg{err: err}
				}

				return payrollMutatedMsg{status: "Tiempo eliminado"}
			}
		}
	}

	var cmd tea.Cmd
	m.timeTable, cmd = m.timeTable.Update(msg)

	return m, cmd
}

func (m PayrollModel) enterEditTimeForm() (tea.Model, tea.Cmd) {
	idx := m.timeTable.Cursor()
	if idx < 0 || idx >= len(m.times) {
		return m, nil
	}

	entry := m.times[idx]
	m.formHours = fmt.Sprintf("%g", entry.Hours)
	m.formAmount = fmt.Sprintf("%.2f", float64(entry.Amount)/100)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("hours").Title("Horas").Value(&m.formHours).
				Validate(validateHours),
			huh.NewInput().Key("amount").Title("Jornal").Value(&m.formAmount).
				Validate(validateAmount),
		),
	).WithWidth(46).WithShowHelp(false)

	m.state = payrollStateEditTime
	m.timeTable.Blur()

	return m, m.form.Init()
}

func (m PayrollModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			if m.state == payrollStateEditTime {
				m.state = payrollStateTimes
				m.timeTable.Focus()
			} else {
				m.state = payrollStateBrowse
				m.table.Focus()
			}

			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == payrollStatePay {
		return m, m.payCmd()
	}

	return m, m.editTimeCmd()
}

// Submitted values are read back through the form, not the bound fields:
// bubbletea models are copied by value, so the pointers captured when the
// form was built point into a stale copy. See loginCmd for the same idiom.
func (m PayrollModel) payCmd() tea.Cmd {
	params, err := buildPaymentParams(m.selected.ID,
		m.form.GetString("amount"),
		m.form.GetString("type"),
		m.form.GetString("date"),
		m.form.GetString("notes"),
	)

	return func() tea.Msg {
		if err != nil {
			return payrollMutatedMsg{err: err}
		}

		ctx, cancel := GwCtx()
		defer cancel()

		if _, err := m.ledger.RegisterPayment(ctx, params); err != nil {
			return payrollMutatedMsg{err: err}
		}

		return payrollMutatedMsg{status: "Pago registrado"}
	}
}

func buildPaymentParams(employeeID uuid.UUID, amount, typ, date, notes string) (ledger.RegisterPaymentParams, error) {
	monto, err := ParseAmount(amount)
	if err != nil {
		return ledger.RegisterPaymentParams{}, err
	}

	fecha, err := time.Parse(time.DateOnly, strings.TrimSpace(date))
	if err != nil {
		return ledger.RegisterPaymentParams{}, fmt.Errorf("fecha inválida %q", date)
	}

	return ledger.RegisterPaymentParams{
		EmployeeID: employeeID,
		Amount:     monto,
		Type:       payment.Type(typ),
		Date:       fecha,
		Notes:      notes,
	}, nil
}

func (m PayrollModel) editTimeCmd() tea.Cmd {
	idx := m.timeTable.Cursor()
	if idx < 0 || idx >= len(m.times) {
		return nil
	}

	params, err := buildEditTimeParams(m.times[idx],
		m.form.GetString("hours"),
		m.form.GetString("amount"),
	)

	return func() tea.Msg {
		if err != nil {
			return payrollMutatedMsg{err: err}
		}

		ctx, cancel := GwCtx()
		defer cancel()

		if err := m.ledger.EditTime(ctx, params); err != nil {
			return payrollMutatedMsg{err: err}
		}

		return payrollMutatedMsg{status: "Tiempo actualizado"}
	}
}

func buildEditTimeParams(entry timeentry.TimeEntry, hours, amount string) (ledger.EditTimeParams, error) {
	h, err := parseHours(hours)
	if err != nil {
		return ledger.EditTimeParams{}, err
	}

	jornal, err := ParseAmount(amount)
	if err != nil {
		return ledger.EditTimeParams{}, err
	}

	return ledger.EditTimeParams{Entry: entry, Hours: h, Amount: jornal}, nil
}

// monthRange returns the first and last day of t's month.
func monthRange(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())

	return from, from.AddDate(0, 1, -1)
}

func (m *PayrollModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.employees))
	for _, e := range m.employees {
		rows = append(rows, table.Row{
			e.LastName,
			e.FirstName,
			e.Specialty,
			string(e.Status),
			FormatAmount(e.SaldoActual),
		})
	}

	m.table.SetRows(rows)
}

func (m *PayrollModel) refreshTimeTable() {
	rows := make([]table.Row, 0, len(m.times))
	for _, t := range m.times {
		rows = append(rows, table.Row{
			FormatDate(t.Date),
			fmt.Sprintf("%g", t.Hours),
			FormatAmount(t.Amount),
			t.Notes,
		})
	}

	m.timeTable.SetRows(rows)
}

func (m PayrollModel) View() string {
	if m.loading && len(m.employees) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("Loading employees...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	var content string

	if m.state == payrollStateTimes || m.state == payrollStateEditTime {
		header := fmt.Sprintf("Tiempos de %s %s  |  Saldo: %s",
			m.selected.FirstName, m.selected.LastName, FormatAmount(m.selected.SaldoActual))
		if m.timesFrom != nil {
			header += "  |  mes actual"
		}

		content = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).PaddingBottom(1).Render(header),
			lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240")).
				Render(m.timeTable.View()),
		)
	} else {
		tableView := lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View())

		footer := lipgloss.NewStyle().Faint(true).Render("Página " + FormatPages(m.pages, m.page))

		content = lipgloss.JoinVertical(lipgloss.Left, tableView, footer)
	}

	if m.form != nil {
		title := "Registrar Pago"
		if m.state == payrollStateEditTime {
			title = "Editar Tiempo"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(50).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m PayrollModel) loadEmployeesCmd(page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		p, err := m.st.Employees.List(ctx, page, 0)

		return payrollLoadedMsg{page: p, err: err}
	}
}

func (m PayrollModel) loadTimesCmd() tea.Cmd {
	employeeID := m.selected.ID
	from, to := m.timesFrom, m.timesTo

	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		p, err := m.st.Times.ListByEmployee(ctx, employeeID, from, to)

		return payrollTimesLoadedMsg{times: p.Items, err: err}
	}
}
