package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rmaldonado/obrix/internal/gateway"
)

// LoggedInMsg is emitted when the gateway accepts the credentials. The token
// is already installed on the gateway client by then.
type LoggedInMsg struct {
	Session *gateway.Session
}

type LoginModel struct {
	CommonModel
	gw *gateway.Client

	form    *huh.Form
	usuario string
	clave   string

	submitting bool
	err        error
}

func NewLoginModel(gw *gateway.Client) LoginModel {
	m := LoginModel{gw: gw}
	m.form = m.newForm()

	return m
}

func (m LoginModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("usuario").
				Title("Usuario").
				Value(&m.usuario),

			huh.NewInput().
				Key("clave").
				Title("Clave").
				EchoMode(huh.EchoModePassword).
				Value(&m.clave),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m LoginModel) Title() string     { return "Login" }
func (m LoginModel) ShortHelp() string { return "Enter: submit | Ctrl+C: quit" }

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

type loginResultMsg struct {
	session *gateway.Session
	err     error
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err
			m.form = m.newForm()

			return m, m.form.Init()
		}

		return m, func() tea.Msg { return LoggedInMsg{Session: msg.session} }

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	if m.submitting {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.submitting = true
	m.err = nil
	m.usuario = m.form.GetString("usuario")
	m.clave = m.form.GetString("clave")

	return m, m.loginCmd()
}

func (m LoginModel) loginCmd() tea.Cmd {
	usuario := m.usuario
	clave := m.clave

	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		session, err := m.gw.Login(ctx, usuario, clave)

		return loginResultMsg{session: session, err: err}
	}
}

func (m LoginModel) View() string {
	if m.submitting {
		return lipgloss.NewStyle().Padding(2).Render("Logging in...")
	}

	content := "Obrix\n\n" + m.form.View()

	if m.err != nil {
		content += lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Render(fmt.Sprintf("\nLogin failed: %v", m.err))
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}
