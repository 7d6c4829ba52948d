package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rmaldonado/obrix/internal/project"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// OpenProjectMsg asks the root model to switch to the project detail view.
type OpenProjectMsg struct {
	Project project.Project
}
