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

	"github.com/rmaldonado/obrix/internal/export"
	"github.com/rmaldonado/obrix/internal/project"
	"github.com/rmaldonado/obrix/internal/state"
)

type projectsState int

const (
	projectsStateBrowse projectsState = iota
	projectsStateCreate
)

type ProjectsModel struct {
	CommonModel
	st        *state.AppState
	exportSvc *export.Service

	state    projectsState
	table    table.Model
	projects []project.Project
	page     int
	pages    int
	form     *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formName     string
	formClientID string
	formAddress  string
	formCategory string
	formBudget   string
	formStart    string
	formDue      string
	formDesc     string
}

func NewProjectsModel(st *state.AppState, exportSvc *export.Service) ProjectsModel {
	columns := []table.Column{
		{Title: "Nombre", Width: 26},
		{Title: "Estado", Width: 12},
		{Title: "Categoría", Width: 18},
		{Title: "Presupuesto", Width: 16},
		{Title: "Inicio", Width: 12},
		{Title: "Límite", Width: 12},
		{Title: "Progreso", Width: 9},
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

	return ProjectsModel{
		st:        st,
		exportSvc: exportSvc,
		table:     t,
		page:      1,
		pages:     1,
	}
}

func (m ProjectsModel) Title() string { return "Proyectos" }
func (m ProjectsModel) ShortHelp() string {
	if m.state == projectsStateCreate {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | Enter: open | c: create | x: export | n/p: page | r: refresh"
}

func (m ProjectsModel) Init() tea.Cmd {
	return tea.Batch(m.loadProjectsCmd(m.page), m.loadClientsCmd())
}

type projectsLoadedMsg struct {
	page state.Page[project.Project]
	err  error
}

type projectClientsLoadedMsg struct {
	err error
}

type projectSavedMsg struct {
	err error
}

type projectsExportedMsg struct {
	path string
	err  error
}

func (m ProjectsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.projects = msg.page.Items
		m.page = msg.page.Page
		m.pages = msg.page.TotalPages
		m.refreshTable()

		return m, nil

	case projectClientsLoadedMsg:
		return m, nil

	case projectSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = "Proyecto creado"
		}

		m.state = projectsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadProjectsCmd(m.page)

	case projectsExportedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error exporting: %v", msg.err)
		} else {
			m.status = "Exportado a " + msg.path
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	switch m.state {
	case projectsStateBrowse:
		return m.updateBrowse(msg)
	case projectsStateCreate:
		return m.updateCreate(msg)
	}

	return m, nil
}

func (m ProjectsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadProjectsCmd(m.page)
		case "n", "right":
			if m.page < m.pages {
				m.loading = true
				return m, m.loadProjectsCmd(m.page + 1)
			}

			return m, nil
		case "p", "left":
			if m.page > 1 {
				m.loading = true
				return m, m.loadProjectsCmd(m.page - 1)
			}

			return m, nil
		case "c":
			return m.enterCreateMode()
		case "x":
			m.status = "Exporting..."
			return m, m.exportCmd()
		case "enter":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.projects) {
				p := m.projects[idx]
				return m, func() tea.Msg { return OpenProjectMsg{Project: p} }
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ProjectsModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formClientID = ""
	m.formAddress = ""
	m.formCategory = string(project.CategoryRenovation)
	m.formBudget = ""
	m.formStart = FormatDate(time.Now())
	m.formDue = ""
	m.formDesc = ""

	clientOpts := make([]huh.Option[string], 0)
	for _, c := range m.st.Clients.Items() {
		clientOpts = append(clientOpts,
			huh.NewOption(c.FirstName+" "+c.LastName, c.ID.String()))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Nombre").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("el nombre es obligatorio")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("client").
				Title("Cliente").
				Options(clientOpts...).
				Value(&m.formClientID),

			huh.NewInput().
				Key("address").
				Title("Dirección").
				Value(&m.formAddress),

			huh.NewSelect[string]().
				Key("category").
				Title("Categoría").
				Options(
					huh.NewOption("Impermeabilización", string(project.CategoryWaterproofing)),
					huh.NewOption("Refacción", string(project.CategoryRenovation)),
					huh.NewOption("Puesto de trabajo", string(project.CategoryWorkstation)),
					huh.NewOption("Pintura", string(project.CategoryPainting)),
				).
				Value(&m.formCategory),

			huh.NewInput().
				Key("budget").
				Title("Presupuesto").
				Placeholder("150000,00").
				Value(&m.formBudget).
				Validate(validateAmount),

			huh.NewInput().
				Key("start").
				Title("Fecha inicio").
				Placeholder("2026-01-31").
				Value(&m.formStart).
				Validate(validateDate),

			huh.NewInput().
				Key("due").
				Title("Fecha límite").
				Placeholder("2026-03-31").
				Value(&m.formDue).
				Validate(validateDate),

			huh.NewInput().
				Key("desc").
				Title("Descripción").
				Value(&m.formDesc),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = projectsStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func validateAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	_, err := ParseAmount(s)

	return err
}

// parseOptionalAmount treats a blank input as zero, matching validateAmount.
func parseOptionalAmount(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}

	return ParseAmount(s)
}

// parseOptionalDate treats a blank input as the zero time, matching
// validateDate.
func parseOptionalDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q", s)
	}

	return t, nil
}

func validateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("formato esperado AAAA-MM-DD")
	}

	return nil
}

func (m ProjectsModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = projectsStateBrowse
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

	return m, m.saveCmd()
}

// saveCmd reads submitted values back through the form, not the bound
// fields: bubbletea models are copied by value, so the pointers captured
// when the form was built point into a stale copy.
func (m ProjectsModel) saveCmd() tea.Cmd {
	params, buildErr := buildProjectParams(
		m.form.GetString("name"),
		m.form.GetString("client"),
		m.form.GetString("address"),
		m.form.GetString("category"),
		m.form.GetString("budget"),
		m.form.GetString("start"),
		m.form.GetString("due"),
		m.form.GetString("desc"),
	)

	return func() tea.Msg {
		if buildErr != nil {
			return projectSavedMsg{err: buildErr}
		}

		ctx, cancel := GwCtx()
		defer cancel()

		_, err := m.st.Projects.Create(ctx, params)

		return projectSavedMsg{err: err}
	}
}

func buildProjectParams(name, clientID, address, category, budget, start, due, desc string) (project.CreateParams, error) {
	id, err := uuid.Parse(clientID)
	if err != nil {
		return project.CreateParams{}, fmt.Errorf("seleccione un cliente")
	}

	presupuesto, err := parseOptionalAmount(budget)
	if err != nil {
		return project.CreateParams{}, err
	}

	startDate, err := parseOptionalDate(start)
	if err != nil {
		return project.CreateParams{}, err
	}

	dueDate, err := parseOptionalDate(due)
	if err != nil {
		return project.CreateParams{}, err
	}

	return project.CreateParams{
		Name:        name,
		ClientID:    id,
		Address:     address,
		Category:    project.Category(category),
		Status:      project.StatusInProgress,
		Budget:      presupuesto,
		StartDate:   startDate,
		DueDate:     dueDate,
		Team:        []uuid.UUID{},
		Description: desc,
	}, nil
}

func (m ProjectsModel) exportCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		// The export covers the whole collection, not the visible page.
		projectPage, err := m.st.Projects.List(ctx, 1, 1000)
		if err != nil {
			return projectsExportedMsg{err: err}
		}

		clientPage, err := m.st.Clients.List(ctx, 1, 1000)
		if err != nil {
			return projectsExportedMsg{err: err}
		}

		employeePage, err := m.st.Employees.List(ctx, 1, 1000)
		if err != nil {
			return projectsExportedMsg{err: err}
		}

		path := fmt.Sprintf("proyectos_%s.xlsx", time.Now().Format("20060102"))
		if err := m.exportSvc.ExportProjects(path, projectPage.Items, clientPage.Items, employeePage.Items); err != nil {
			return projectsExportedMsg{err: err}
		}

		return projectsExportedMsg{path: path}
	}
}

func (m *ProjectsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.projects))
	for _, p := range m.projects {
		rows = append(rows, table.Row{
			p.Name,
			string(p.Status),
			string(p.Category),
			FormatAmount(p.Budget),
			FormatDate(p.StartDate),
			FormatDate(p.DueDate),
			fmt.Sprintf("%d%%", p.Progress),
		})
	}

	m.table.SetRows(rows)
}

func (m ProjectsModel) View() string {
	if m.loading && len(m.projects) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("Loading projects...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	footer := lipgloss.NewStyle().Faint(true).Render("Página " + FormatPages(m.pages, m.page))

	content := lipgloss.JoinVertical(lipgloss.Left, tableView, footer)

	if m.state == projectsStateCreate && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(54).
			Render("Nuevo Proyecto\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ProjectsModel) loadProjectsCmd(page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		p, err := m.st.Projects.List(ctx, page, 0)

		return projectsLoadedMsg{page: p, err: err}
	}
}

// loadClientsCmd warms the client cache used by the create form and by the
// detail view's name lookups.
func (m ProjectsModel) loadClientsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		_, err := m.st.Clients.List(ctx, 1, 1000)

		return projectClientsLoadedMsg{err: err}
	}
}
