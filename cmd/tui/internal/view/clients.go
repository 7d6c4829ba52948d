package view

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rmaldonado/obrix/internal/client"
	"github.com/rmaldonado/obrix/internal/importer/roster"
	"github.com/rmaldonado/obrix/internal/state"
)

type clientsState int

const (
	clientsStateBrowse clientsState = iota
	clientsStateCreate
	clientsStateImport
)

type ClientsModel struct {
	CommonModel
	st     *state.AppState
	roster *roster.Parser

	state   clientsState
	table   table.Model
	clients []client.Client
	page    int
	pages   int
	form    *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formFirst string
	formLast  string
	formPhone string
	formEmail string
	formAddr  string
	formCity  string
	formDNI   string
	formRef   string
	formPath  string
}

func NewClientsModel(st *state.AppState, rosterParser *roster.Parser) ClientsModel {
	columns := []table.Column{
		{Title: "Apellido", Width: 18},
		{Title: "Nombre", Width: 16},
		{Title: "Teléfono", Width: 16},
		{Title: "Ciudad", Width: 16},
		{Title: "DNI", Width: 12},
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

	return ClientsModel{
		st:     st,
		roster: rosterParser,
		table:  t,
		page:   1,
		pages:  1,
	}
}

func (m ClientsModel) Title() string { return "Clientes" }
func (m ClientsModel) ShortHelp() string {
	if m.state != clientsStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | c: create | i: import CSV | n/→ ←: page | r: refresh"
}

func (m ClientsModel) Init() tea.Cmd {
	return m.loadClientsCmd(m.page)
}

type clientsLoadedMsg struct {
	page state.Page[client.Client]
	err  error
}

type clientSavedMsg struct {
	err error
}

type clientsImportedMsg struct {
	count int
	err   error
}

func (m ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.clients = msg.page.Items
		m.page = msg.page.Page
		m.pages = msg.page.TotalPages
		m.refreshTable()

		return m, nil

	case clientSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = "Cliente creado"
		}

		m.state = clientsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadClientsCmd(m.page)

	case clientsImportedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error importing: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("%d clientes importados", msg.count)
		}

		m.state = clientsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadClientsCmd(m.page)

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	if m.state == clientsStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m ClientsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadClientsCmd(m.page)
		case "n", "right":
			if m.page < m.pages {
				m.loading = true
				return m, m.loadClientsCmd(m.page + 1)
			}

			return m, nil
		case "left":
			if m.page > 1 {
				m.loading = true
				return m, m.loadClientsCmd(m.page - 1)
			}

			return m, nil
		case "c":
			return m.enterCreateMode()
		case "i":
			return m.enterImportMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ClientsModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.formFirst = ""
	m.formLast = ""
	m.formPhone = ""
	m.formEmail = ""
	m.formAddr = ""
	m.formCity = ""
	m.formDNI = ""
	m.formRef = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("first").Title("Nombre").Value(&m.formFirst).
				Validate(required("el nombre es obligatorio")),
			huh.NewInput().Key("last").Title("Apellido").Value(&m.formLast).
				Validate(required("el apellido es obligatorio")),
			huh.NewInput().Key("phone").Title("Teléfono").Value(&m.formPhone),
			huh.NewInput().Key("email").Title("Email").Value(&m.formEmail),
			huh.NewInput().Key("addr").Title("Dirección").Value(&m.formAddr),
			huh.NewInput().Key("city").Title("Ciudad").Value(&m.formCity),
			huh.NewInput().Key("dni").Title("DNI").Value(&m.formDNI),
			huh.NewInput().Key("ref").Title("Medio de referencia").Value(&m.formRef),
		),
	).WithWidth(46).WithShowHelp(false)

	m.state = clientsStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m ClientsModel) enterImportMode() (tea.Model, tea.Cmd) {
	m.formPath = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("path").Title("Archivo CSV").
				Placeholder("clientes.csv").
				Value(&m.formPath).
				Validate(func(s string) error {
					if _, err := os.Stat(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("no se puede leer el archivo")
					}

					return nil
				}),
		),
	).WithWidth(46).WithShowHelp(false)

	m.state = clientsStateImport
	m.table.Blur()

	return m, m.form.Init()
}

func (m ClientsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = clientsStateBrowse
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

	if m.state == clientsStateImport {
		return m, m.importCmd()
	}

	return m, m.saveCmd()
}

// saveCmd reads submitted values back through the form, not the bound
// fields: bubbletea models are copied by value, so the pointers captured
// when the form was built point into a stale copy.
func (m ClientsModel) saveCmd() tea.Cmd {
	params := client.CreateParams{
		FirstName:       m.form.GetString("first"),
		LastName:        m.form.GetString("last"),
		Phone:           m.form.GetString("phone"),
		Email:           m.form.GetString("email"),
		Address:         m.form.GetString("addr"),
		City:            m.form.GetString("city"),
		DNI:             m.form.GetString("dni"),
		ReferenceMedium: m.form.GetString("ref"),
		CreatedAt:       time.Now(),
	}

	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		_, err := m.st.Clients.Create(ctx, params)

		return clientSavedMsg{err: err}
	}
}

func (m ClientsModel) importCmd() tea.Cmd {
	path := strings.TrimSpace(m.form.GetString("path"))

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return clientsImportedMsg{err: err}
		}
		defer f.Close()

		rows, err := m.roster.Parse(f)
		if err != nil {
			return clientsImportedMsg{err: err}
		}

		ctx, cancel := GwCtx()
		defer cancel()

		for _, params := range rows {
			if _, err := m.st.Clients.Create(ctx, params); err != nil {
				return clientsImportedMsg{err: err}
			}
		}

		return clientsImportedMsg{count: len(rows)}
	}
}

func (m *ClientsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.clients))
	for _, c := range m.clients {
		rows = append(rows, table.Row{
			c.LastName,
			c.FirstName,
			c.Phone,
			c.City,
			c.DNI,
		})
	}

	m.table.SetRows(rows)
}

func (m ClientsModel) View() string {
	if m.loading && len(m.clients) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("Loading clients...")
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

	if m.state != clientsStateBrowse && m.form != nil {
		title := "Nuevo Cliente"
		if m.state == clientsStateImport {
			title = "Importar Clientes"
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

func (m ClientsModel) loadClientsCmd(page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		p, err := m.st.Clients.List(ctx, page, 0)

		return clientsLoadedMsg{page: p, err: err}
	}
}
