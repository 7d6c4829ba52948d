package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/rmaldonado/obrix/cmd/tui/internal/view"
	"github.com/rmaldonado/obrix/internal/config"
	"github.com/rmaldonado/obrix/internal/export"
	"github.com/rmaldonado/obrix/internal/gateway"
	"github.com/rmaldonado/obrix/internal/importer/roster"
	"github.com/rmaldonado/obrix/internal/ledger"
	"github.com/rmaldonado/obrix/internal/state"
)

type model struct {
	gw        *gateway.Client
	st        *state.AppState
	ledger    *ledger.Ledger
	exportSvc *export.Service
	roster    *roster.Parser

	currentView View

	loginView    view.LoginModel
	projectsView view.ProjectsModel
	detailView   view.ProjectDetailModel
	payrollView  view.PayrollModel
	paymentsView view.PaymentsModel
	clientsView  view.ClientsModel
}

type View int

const (
	ViewLogin    View = 0
	ViewMenu     View = 1
	ViewProjects View = 2
	ViewDetail   View = 3
	ViewPayroll  View = 4
	ViewPayments View = 5
	ViewClients  View = 6
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	gw := gateway.New(cfg.Gateway.BaseURL, cfg.Gateway.Timeout)
	if cfg.Gateway.Token != "" {
		gw.SetToken(cfg.Gateway.Token)
	}

	st := state.New(gw)
	lg := ledger.FromState(st)
	expSvc := export.NewService()
	rosterParser := roster.NewParser()

	currentView := ViewLogin
	if cfg.Gateway.Token != "" {
		currentView = ViewMenu
	}

	return model{
		gw:           gw,
		st:           st,
		ledger:       lg,
		exportSvc:    expSvc,
		roster:       rosterParser,
		currentView:  currentView,
		loginView:    view.NewLoginModel(gw),
		projectsView: view.NewProjectsModel(st, expSvc),
		payrollView:  view.NewPayrollModel(st, lg),
		paymentsView: view.NewPaymentsModel(st, lg),
		clientsView:  view.NewClientsModel(st, rosterParser),
	}
}

func (m model) Init() tea.Cmd {
	if m.currentView == ViewLogin {
		return m.loginView.Init()
	}

	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewProjects
				m.projectsView = view.NewProjectsModel(m.st, m.exportSvc)

				return m, m.projectsView.Init()
			case "2":
				m.currentView = ViewPayroll
				m.payrollView = view.NewPayrollModel(m.st, m.ledger)

				return m, m.payrollView.Init()
			case "3":
				m.currentView = ViewPayments
				m.paymentsView = view.NewPaymentsModel(m.st, m.ledger)

				return m, m.paymentsView.Init()
			case "4":
				m.currentView = ViewClients
				m.clientsView = view.NewClientsModel(m.st, m.roster)

				return m, m.clientsView.Init()
			}
		}
	case view.LoggedInMsg:
		m.currentView = ViewMenu
		return m, nil
	case view.OpenProjectMsg:
		m.currentView = ViewDetail
		m.detailView = view.NewProjectDetailModel(m.st, m.ledger, msg.Project)

		return m, m.detailView.Init()
	case view.BackMsg:
		if m.currentView == ViewDetail {
			m.currentView = ViewProjects
			return m, m.projectsView.Init()
		}

		m.currentView = ViewMenu

		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewProjects:
		var newModel tea.Model
		newModel, cmd = m.projectsView.Update(msg)
		m.projectsView = newModel.(view.ProjectsModel)
	case ViewDetail:
		var newModel tea.Model
		newModel, cmd = m.detailView.Update(msg)
		m.detailView = newModel.(view.ProjectDetailModel)
	case ViewPayroll:
		var newModel tea.Model
		newModel, cmd = m.payrollView.Update(msg)
		m.payrollView = newModel.(view.PayrollModel)
	case ViewPayments:
		var newModel tea.Model
		newModel, cmd = m.paymentsView.Update(msg)
		m.paymentsView = newModel.(view.PaymentsModel)
	case ViewClients:
		var newModel tea.Model
		newModel, cmd = m.clientsView.Update(msg)
		m.clientsView = newModel.(view.ClientsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Obrix TUI\n\n" +
				"1. Proyectos\n" +
				"2. Personal\n" +
				"3. Pagos\n" +
				"4. Clientes\n\n" +
				"q. Quit",
		)
	case ViewProjects:
		return m.projectsView.View()
	case ViewDetail:
		return m.detailView.View()
	case ViewPayroll:
		return m.payrollView.View()
	case ViewPayments:
		return m.paymentsView.View()
	case ViewClients:
		return m.clientsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
