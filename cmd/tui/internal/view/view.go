package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hadetan/expense-tracking/internal/expense"
	"github.com/hadetan/expense-tracking/internal/user"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views that act for the signed-in user.
type CommonModel struct {
	User *user.User
}

func (c CommonModel) actor() expense.Actor {
	return expense.Actor{UserID: c.User.ID, IsAdmin: c.User.IsAdmin}
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)
