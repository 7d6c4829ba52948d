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

	"github.com/rmaldonado/obrix/internal/budget"
	"github.com/rmaldonado/obrix/internal/expense"
	"github.com/rmaldonado/obrix/internal/ledger"
	"github.com/rmaldonado/obrix/internal/project"
	"github.com/rmaldonado/obrix/internal/state"
)

type detailState int

const (
	detailStateBrowse detailState = iota
	detailStateExpense
	detailStateBudget
	detailStateCounterInvoice
	detailStateTime
	detailStateStatus
	detailStateClose
	detailStateTeam
)

type ProjectDetailModel struct {
	CommonModel
	st     *state.AppState
	ledger *ledger.Ledger

	project  project.Project
	expenses []expense.Expense
	summary  budget.Summary

	state detailState
	table table.Model
	form  *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formConcept  string
	formCategory string
	formAmount   string
	formDate     string
	formSupplier string
	formRef      string
	formEmployee string
	formHours    string
	formNotes    string
	formStatus   string
	formTeam     []string
}

func NewProjectDetailModel(st *state.AppState, lg *ledger.Ledger, p project.Project) ProjectDetailModel {
	columns := []table.Column{
		{Title: "Fecha", Width: 12},
		{Title: "Concepto", Width: 30},
		{Title: "Categoría", Width: 20},
		{Title: "Monto", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
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

	return ProjectDetailModel{
		st:      st,
		ledger:  lg,
		project: p,
		table:   t,
	}
}

func (m ProjectDetailModel) Title() string { return "Proyecto: " + m.project.Name }
func (m ProjectDetailModel) ShortHelp() string {
	if m.state != detailStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | g: gasto | b: presupuesto | f: contrafactura | y: pagar cf | t: tiempo | s: estado | e: cierre | m: equipo"
}

func (m ProjectDetailModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.loadEmployeesCmd())
}

type detailLoadedMsg struct {
	project  project.Project
	expenses []expense.Expense
	err      error
}

type detailEmployeesLoadedMsg struct {
	err error
}

type detailMutatedMsg struct {
	status string
	err    error
}

func (m ProjectDetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.project = msg.project
		m.expenses = msg.expenses
		m.summary = budget.Summarize(m.project.Budget, m.expenses)
		m.refreshTable()

		return m, nil

	case detailEmployeesLoadedMsg:
		return m, nil

	case detailMutatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		m.state = detailStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 16)
		return m, nil
	}

	if m.state == detailStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m ProjectDetailModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "g":
			return m.enterExpenseForm()
		case "b":
			return m.enterBudgetForm()
		case "f":
			return m.enterCounterInvoiceForm()
		case "y":
			return m.payCounterInvoice()
		case "t":
			return m.enterTimeForm()
		case "s":
			return m.enterStatusForm()
		case "e":
			return m.enterCloseForm()
		case "m":
			return m.enterTeamForm()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ProjectDetailModel) enterExpenseForm() (tea.Model, tea.Cmd) {
	m.formConcept = ""
	m.formCategory = "Materiales"
	m.formAmount = ""
	m.formDate = FormatDate(time.Now())
	m.formSupplier = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("concept").Title("Concepto").Value(&m.formConcept).
				Validate(required("el concepto es obligatorio")),
			huh.NewSelect[string]().Key("category").Title("Categoría").
				Options(
					huh.NewOption("Materiales", "Materiales"),
					huh.NewOption("Mano de Obra", string(expense.CategoryPersonnel)),
					huh.NewOption("Herramientas", "Herramientas"),
					huh.NewOption("Transporte", "Transporte"),
					huh.NewOption("Otros", "Otros"),
				).
				Value(&m.formCategory),
			huh.NewInput().Key("amount").Title("Monto").Placeholder("12500,00").
				Value(&m.formAmount).Validate(validateAmount),
			huh.NewInput().Key("date").Title("Fecha").Value(&m.formDate).Validate(validateDate),
			huh.NewInput().Key("supplier").Title("Proveedor").Value(&m.formSupplier),
		),
	).WithWidth(46).WithShowHelp(false)

	m.state = detailStateExpense
	m.table.Blur()

	return m, m.form.Init()
}

func (m ProjectDetailModel) enterBudgetForm() (tea.Model, tea.Cmd) {
	m.formAmount = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("amount").Title("Monto adicional").Placeholder("50000,00").
				Value(&m.formAmount).Validate(validateAmount),
		),
	).WithWidth(46).WithShowHelp(false)

	m.state = detailStateBudget
	m.table.Blur()

	return m, m.form.Init()
}

func (m ProjectDetailModel) enterCounterInvoiceForm() (tea.Model, tea.Cmd) {
	m.formConcept = ""
	m.formAmount = ""
	m.formRef = ""
	m.formDate = FormatDate(time.Now())

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("concept").Title("Descripción").Value(&m.formConcept).
				Validate(required("la descripción es obligatoria")),
			huh.NewInput().Key("amount").Title("Monto").Value(&m.formAmount).
				Validate(validateAmount),
			huh.NewInput().Key("ref").Title("Referencia").Value(&m.formRef),
			huh.NewInput().Key("date").Title("Fecha").Value(&m.formDate).Validate(validateDate),
		),
	).WithWidth(46).WithShowHelp(false)

	m.state = detailStateCounterInvoice
	m.table.Blur()

	return m, m.form.Init()
}

func (m ProjectDetailModel) payCounterInvoice() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.expenses) {
		return m, nil
	}

	exp := m.expenses[idx]
	if exp.Category != expense.CategoryCounterInvoice {
		m.status = "El gasto seleccionado no es una contrafactura pendiente"
		return m, nil
	}

	return m, func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		if err := m.ledger.PayCounterInvoice(ctx, exp); err != nil {
			return detailMutatedMsg{err: err}
		}

		return detailMutatedMsg{status: "Contrafactura pagada"}
	}
}

func (m ProjectDetailModel) enterTimeForm() (tea.Model, tea.Cmd) {
	m.formEmployee = ""
	m.formDate = FormatDate(time.Now())
	m.formHours = "8"
	m.formAmount = ""
	m.formNotes = ""

	opts := make([]huh.Option[string], 0)
	for _, e := range m.st.Employees.Items() {
		opts = append(opts, huh.NewOption(e.FirstName+" "+e.LastName, e.ID.String()))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Key("employee").Title("Empleado").
				Options(opts...).Value(&m.formEmployee),
			huh.NewInput().Key("date").Title("Fecha").Value(&m.formDate).Validate(validateDate),
			huh.NewInput().Key("hours").Title("Horas").Value(&m.formHours).
				Validate(validateHours),
			huh.NewInput().Key("amount").Title("Jornal").Placeholder("8000,00").
				Value(&m.formAmount).Validate(validateAmount),
			huh.NewInput().Key("notes").Title("Notas").Value(&m.formNotes),
		),
	).WithWidth(46).WithShowHelp(false)

	m.state = detailStateTime
	m.table.Blur()

	return m, m.form.Init()
}

func (m ProjectDetailModel) enterStatusForm() (tea.Model, tea.Cmd) {
	m.formStatus = string(m.project.Status)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Key("status").Title("Estado").
				Options(
					huh.NewOption("En progreso", string(project.StatusInProgress)),
					huh.NewOption("Finalizada", string(project.StatusFinished)),
					huh.NewOption("Atrasada", string(project.StatusLate)),
					huh.NewOption("Garantía", string(project.StatusWarranty)),
				).
				Value(&m.formStatus),
		),
	).WithWidth(46).WithShowHelp(false)

	m.state = detailStateStatus
	m.table.Blur()

	return m, m.form.Init()
}

func (m ProjectDetailModel) enterCloseForm() (tea.Model, tea.Cmd) {
	m.formDate = FormatDate(time.Now())

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("date").Title("Fecha de cierre").
				Value(&m.formDate).Validate(validateDate),
		),
	).WithWidth(46).WithShowHelp(false)

	m.state = detailStateClose
	m.table.Blur()

	return m, m.form.Init()
}

func (m ProjectDetailModel) enterTeamForm() (tea.Model, tea.Cmd) {
	current := make(map[uuid.UUID]bool, len(m.project.Team))
	for _, id := range m.project.Team {
		current[id] = true
	}

	m.formTeam = nil

	opts := make([]huh.Option[string], 0)
	for _, e := range m.st.Employees.Items() {
		opt := huh.NewOption(e.FirstName+" "+e.LastName, e.ID.String())
		if current[e.ID] {
			opt = opt.Selected(true)
		}

		opts = append(opts, opt)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().Key("team").Title("Equipo").
				Options(opts...).Value(&m.formTeam),
		),
	).WithWidth(46).WithShowHelp(false)

	m.state = detailStateTeam
	m.table.Blur()

	return m, m.form.Init()
}

func required(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s", msg)
		}

		return nil
	}
}

func (m ProjectDetailModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = detailStateBrowse
			m.form = nil
			m.table.Focus()

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

	switch m.state {
	case detailStateExpense:
		return m, m.saveExpenseCmd()
	case detailStateBudget:
		return m, m.saveBudgetCmd()
	case detailStateCounterInvoice:
		return m, m.saveCounterInvoiceCmd()
	case detailStateTime:
		return m, m.saveTimeCmd()
	case detailStateStatus:
		return m, m.saveStatusCmd()
	case detailStateClose:
		return m, m.saveCloseCmd()
	case detailStateTeam:
		return m, m.saveTeamCmd()
	}

	return m, nil
}

// The save commands read submitted values back through the form, not the
// bound fields: bubbletea models are copied by value, so the pointers
// captured when the form was built point into a stale copy.
func (m ProjectDetailModel) saveExpenseCmd() tea.Cmd {
	params, err := buildExpenseParams(m.project.ID,
		m.form.GetString("concept"),
		m.form.GetString("category"),
		m.form.GetString("amount"),
		m.form.GetString("date"),
		m.form.GetString("supplier"),
	)

	return func() tea.Msg {
		if err != nil {
			return detailMutatedMsg{err: err}
		}

		ctx, cancel := GwCtx()
		defer cancel()

		if _, err := m.st.Expenses.Create(ctx, params); err != nil {
			return detailMutatedMsg{err: err}
		}

		return detailMutatedMsg{status: "Gasto registrado"}
	}
}

func buildExpenseParams(projectID uuid.UUID, concept, category, amount, date, supplier string) (expense.CreateParams, error) {
	monto, err := parseOptionalAmount(amount)
	if err != nil {
		return expense.CreateParams{}, err
	}

	fecha, err := time.Parse(time.DateOnly, strings.TrimSpace(date))
	if err != nil {
		return expense.CreateParams{}, fmt.Errorf("fecha inválida %q", date)
	}

	return expense.CreateParams{
		ProjectID: projectID,
		Concept:   concept,
		Category:  expense.Category(category),
		Amount:    monto,
		Date:      fecha,
		Supplier:  supplier,
	}, nil
}

func (m ProjectDetailModel) saveBudgetCmd() tea.Cmd {
	amount, err := ParseAmount(m.form.GetString("amount"))

	return func() tea.Msg {
		if err != nil {
			return detailMutatedMsg{err: err}
		}

		ctx, cancel := GwCtx()
		defer cancel()

		if err := m.ledger.AddBudget(ctx, m.project.ID, amount); err != nil {
			return detailMutatedMsg{err: err}
		}

		return detailMutatedMsg{status: "Presupuesto ampliado"}
	}
}

func (m ProjectDetailModel) saveCounterInvoiceCmd() tea.Cmd {
	params, err := buildCounterInvoiceParams(m.project.ID,
		m.form.GetString("concept"),
		m.form.GetString("amount"),
		m.form.GetString("ref"),
		m.form.GetString("date"),
	)

	return func() tea.Msg {
		if err != nil {
			return detailMutatedMsg{err: err}
		}

		ctx, cancel := GwCtx()
		defer cancel()

		if _, err := m.ledger.RecordCounterInvoice(ctx, params); err != nil {
			return detailMutatedMsg{err: err}
		}

		return detailMutatedMsg{status: "Contrafactura registrada"}
	}
}

func buildCounterInvoiceParams(projectID uuid.UUID, description, amount, ref, date string) (ledger.CounterInvoiceParams, error) {
	monto, err := ParseAmount(amount)
	if err != nil {
		return ledger.CounterInvoiceParams{}, err
	}

	fecha, err := time.Parse(time.DateOnly, strings.TrimSpace(date))
	if err != nil {
		return ledger.CounterInvoiceParams{}, fmt.Errorf("fecha inválida %q", date)
	}

	return ledger.CounterInvoiceParams{
		ProjectID:   projectID,
		Description: description,
		Amount:      monto,
		Ref:         ref,
		Date:        fecha,
	}, nil
}

func (m ProjectDetailModel) saveTimeCmd() tea.Cmd {
	params, err := buildTimeParams(m.project.ID,
		m.form.GetString("employee"),
		m.form.GetString("date"),
		m.form.GetString("hours"),
		m.form.GetString("amount"),
		m.form.GetString("notes"),
	)

	return func() tea.Msg {
		if err != nil {
			return detailMutatedMsg{err: err}
		}

		ctx, cancel := GwCtx()
		defer cancel()

		if _, err := m.ledger.RegisterTime(ctx, params); err != nil {
			return detailMutatedMsg{err: err}
		}

		return detailMutatedMsg{status: "Tiempo registrado"}
	}
}

func buildTimeParams(projectID uuid.UUID, employee, date, hours, amount, notes string) (ledger.RegisterTimeParams, error) {
	employeeID, err := uuid.Parse(employee)
	if err != nil {
		return ledger.RegisterTimeParams{}, fmt.Errorf("seleccione un empleado")
	}

	fecha, err := time.Parse(time.DateOnly, strings.TrimSpace(date))
	if err != nil {
		return ledger.RegisterTimeParams{}, fmt.Errorf("fecha inválida %q", date)
	}

	horas, err := parseHours(hours)
	if err != nil {
		return ledger.RegisterTimeParams{}, err
	}

	jornal, err := parseOptionalAmount(amount)
	if err != nil {
		return ledger.RegisterTimeParams{}, err
	}

	return ledger.RegisterTimeParams{
		ProjectID:  projectID,
		EmployeeID: employeeID,
		Date:       fecha,
		Hours:      horas,
		Amount:     jornal,
		Notes:      notes,
	}, nil
}

func (m ProjectDetailModel) saveStatusCmd() tea.Cmd {
	status := project.Status(m.form.GetString("status"))

	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		if _, err := m.st.Projects.Update(ctx, m.project.ID, project.UpdateParams{Status: &status}); err != nil {
			return detailMutatedMsg{err: err}
		}

		return detailMutatedMsg{status: "Estado actualizado"}
	}
}

func (m ProjectDetailModel) saveCloseCmd() tea.Cmd {
	endDate, parseErr := time.Parse(time.DateOnly, strings.TrimSpace(m.form.GetString("date")))

	return func() tea.Msg {
		if parseErr != nil {
			return detailMutatedMsg{err: parseErr}
		}

		ctx, cancel := GwCtx()
		defer cancel()

		// Closing sets the end date and marks the project finished in one PATCH.
		finished := project.StatusFinished
		if _, err := m.st.Projects.Update(ctx, m.project.ID, project.UpdateParams{
			EndDate: &endDate,
			Status:  &finished,
		}); err != nil {
			return detailMutatedMsg{err: err}
		}

		return detailMutatedMsg{status: "Proyecto cerrado"}
	}
}

func (m ProjectDetailModel) saveTeamCmd() tea.Cmd {
	selected, _ := m.form.Get("team").([]string)

	team := make([]uuid.UUID, 0, len(selected))
	for _, s := range selected {
		if id, err := uuid.Parse(s); err == nil {
			team = append(team, id)
		}
	}

	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		if _, err := m.st.Projects.Update(ctx, m.project.ID, project.UpdateParams{Team: &team}); err != nil {
			return detailMutatedMsg{err: err}
		}

		return detailMutatedMsg{status: "Equipo actualizado"}
	}
}

func parseHours(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))

	var h float64
	if _, err := fmt.Sscanf(s, "%g", &h); err != nil {
		return 0, fmt.Errorf("invalid hours %q", s)
	}

	return h, nil
}

func validateHours(s string) error {
	if _, err := parseHours(s); err != nil {
		return fmt.Errorf("horas inválidas")
	}

	return nil
}

func (m *ProjectDetailModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.expenses))
	for _, e := range m.expenses {
		rows = append(rows, table.Row{
			FormatDate(e.Date),
			e.Concept,
			string(e.Category),
			FormatAmount(e.Amount),
		})
	}

	m.table.SetRows(rows)
}

func (m ProjectDetailModel) View() string {
	if m.loading && len(m.expenses) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("Loading project...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	clientName := m.project.ClientID.String()
	if c, ok := m.st.Clients.Find(m.project.ClientID); ok {
		clientName = c.FirstName + " " + c.LastName
	}

	header := fmt.Sprintf("%s  |  %s  |  %s  |  %d%%",
		m.project.Name, clientName, m.project.Status, m.project.Progress)

	summary := fmt.Sprintf(
		"Presupuesto: %s   Gastado: %s   Restante: %s   Usado: %d%%\nContrafacturas pendientes: %s   Personal: %s",
		FormatAmount(m.summary.Budget),
		FormatAmount(m.summary.TotalSpent),
		FormatAmount(m.summary.Remaining),
		m.summary.UsedPct,
		FormatAmount(m.summary.PendingCounterInvoices),
		FormatAmount(m.summary.PersonnelTotal),
	)

	if m.summary.Balance < 0 {
		summary += lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Render(fmt.Sprintf("   Excedido: %s", FormatAmount(-m.summary.Balance)))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(header),
		lipgloss.NewStyle().PaddingBottom(1).Render(summary),
		tableView,
	)

	if m.state != detailStateBrowse && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(50).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ProjectDetailModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		proj, err := m.st.Projects.GetByID(ctx, m.project.ID)
		if err != nil {
			return detailLoadedMsg{err: err}
		}

		// All expenses are needed for the budget breakdown, not one page.
		page, err := m.st.Expenses.ListByProject(ctx, m.project.ID, 1, 1000)
		if err != nil {
			return detailLoadedMsg{err: err}
		}

		return detailLoadedMsg{project: proj, expenses: page.Items}
	}
}

func (m ProjectDetailModel) loadEmployeesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		_, err := m.st.Employees.List(ctx, 1, 1000)

		return detailEmployeesLoadedMsg{err: err}
	}
}
