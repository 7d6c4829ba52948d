package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/rmaldonado/obrix/internal/employee"
	"github.com/rmaldonado/obrix/internal/ledger"
	"github.com/rmaldonado/obrix/internal/payment"
	"github.com/rmaldonado/obrix/internal/state"
)

const searchDebounce = 300 * time.Millisecond

type PaymentsModel struct {
	CommonModel
	st     *state.AppState
	ledger *ledger.Ledger

	table    table.Model
	search   textinput.Model
	payments []payment.Payment
	page     int
	pages    int

	// matched is the employee the current history belongs to; nil shows all.
	matched *employee.Employee

	// searchSeq invalidates stale debounce ticks: only the tick carrying the
	// latest sequence number triggers a query.
	searchSeq int

	loading bool
	err     error
	status  string
}

func NewPaymentsModel(st *state.AppState, lg *ledger.Ledger) PaymentsModel {
	columns := []table.Column{
		{Title: "Fecha", Width: 12},
		{Title: "Empleado", Width: 24},
		{Title: "Tipo", Width: 10},
		{Title: "Monto", Width: 16},
		{Title: "Notas", Width: 28},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
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

	search := textinput.New()
	search.Placeholder = "Buscar empleado..."
	search.CharLimit = 60
	search.Width = 30

	return PaymentsModel{
		st:     st,
		ledger: lg,
		table:  t,
		search: search,
		page:   1,
		pages:  1,
	}
}

func (m PaymentsModel) Title() string { return "Pagos" }
func (m PaymentsModel) ShortHelp() string {
	return "Esc: back | /: search | d: delete | n/→ ←: page | r: refresh"
}

func (m PaymentsModel) Init() tea.Cmd {
	return tea.Batch(m.loadPaymentsCmd(1), m.loadEmployeesCmd())
}

type paymentsLoadedMsg struct {
	page state.Page[payment.Payment]
	err  error
}

type paymentsEmployeesLoadedMsg struct {
	err error
}

type paymentsMutatedMsg struct {
	status string
	err    error
}

type searchDebounceMsg struct {
	seq int
}

func (m PaymentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case paymentsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.payments = msg.page.Items
		m.page = msg.page.Page
		m.pages = msg.page.TotalPages
		m.refreshTable()

		return m, nil

	case paymentsEmployeesLoadedMsg:
		return m, nil

	case paymentsMutatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		return m, m.loadPaymentsCmd(m.page)

	case searchDebounceMsg:
		// Stale ticks from earlier keystrokes are dropped.
		if msg.seq != m.searchSeq {
			return m, nil
		}

		m.applySearch()
		m.loading = true

		return m, m.loadPaymentsCmd(1)

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.search.Focused() {
			switch keyMsg.String() {
			case "esc":
				m.search.Blur()
				m.search.SetValue("")
				m.matched = nil
				m.table.Focus()

				return m, m.loadPaymentsCmd(1)
			case "enter":
				m.search.Blur()
				m.table.Focus()

				return m, nil
			}

			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)

			m.searchSeq++
			seq := m.searchSeq

			return m, tea.Batch(cmd, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
				return searchDebounceMsg{seq: seq}
			}))
		}

		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "/":
			m.table.Blur()
			return m, m.search.Focus()
		case "r":
			m.loading = true
			return m, m.loadPaymentsCmd(m.page)
		case "n", "right":
			if m.page < m.pages {
				m.loading = true
				return m, m.loadPaymentsCmd(m.page + 1)
			}

			return m, nil
		case "left":
			if m.page > 1 {
				m.loading = true
				return m, m.loadPaymentsCmd(m.page - 1)
			}

			return m, nil
		case "d":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.payments) {
				return m, nil
			}

			p := m.payments[idx]

			return m, func() tea.Msg {
				ctx, cancel := GwCtx()
				defer cancel()

				// Deleting a payment never credits the balance back.
				if err := m.ledger.DeletePayment(ctx, p); err != nil {
					return paymentsMutatedMsg{err: err}
				}

				return paymentsMutatedMsg{status: "Pago eliminado"}
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

// applySearch resolves the typed text against the employee cache. The first
// employee whose full name contains the query (case-insensitive) wins.
func (m *PaymentsModel) applySearch() {
	query := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if query == "" {
		m.matched = nil
		return
	}

	for _, e := range m.st.Employees.Items() {
		full := strings.ToLower(e.FirstName + " " + e.LastName)
		if strings.Contains(full, query) {
			m.matched = &e
			return
		}
	}

	m.matched = nil
}

func (m *PaymentsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.payments))
	for _, p := range m.payments {
		rows = append(rows, table.Row{
			FormatDate(p.Date),
			m.employeeName(p.EmployeeID),
			string(p.Type),
			FormatAmount(p.Amount),
			p.Notes,
		})
	}

	m.table.SetRows(rows)
}

func (m *PaymentsModel) employeeName(id uuid.UUID) string {
	if e, ok := m.st.Employees.Find(id); ok {
		return e.FirstName + " " + e.LastName
	}

	return id.String()
}

func (m PaymentsModel) View() string {
	if m.loading && len(m.payments) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("Loading payments...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := m.search.View()
	if m.matched != nil {
		header += lipgloss.NewStyle().Faint(true).Render(
			fmt.Sprintf("  (historial de %s %s)", m.matched.FirstName, m.matched.LastName))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	footer := lipgloss.NewStyle().Faint(true).Render("Página " + FormatPages(m.pages, m.page))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		footer,
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m PaymentsModel) loadPaymentsCmd(page int) tea.Cmd {
	matched := m.matched

	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		var (
			p   state.Page[payment.Payment]
			err error
		)

		if matched != nil {
			p, err = m.st.Payments.ListByEmployee(ctx, matched.ID, nil, page, 0)
		} else {
			p, err = m.st.Payments.List(ctx, page, 0, nil)
		}

		return paymentsLoadedMsg{page: p, err: err}
	}
}

func (m PaymentsModel) loadEmployeesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		_, err := m.st.Employees.List(ctx, 1, 1000)

		return paymentsEmployeesLoadedMsg{err: err}
	}
}
