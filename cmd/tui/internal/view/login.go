package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hadetan/expense-tracking/internal/auth"
	"github.com/hadetan/expense-tracking/internal/user"
)

// LoggedInMsg is emitted once the credentials have been accepted.
type LoggedInMsg struct {
	User *user.User
}

// credentials is shared by every copy of the model so the form bindings stay valid.
type credentials struct {
	email    string
	password string
}

type LoginModel struct {
	authService *auth.Service

	form  *huh.Form
	creds *credentials

	busy bool
	err  error
}

func NewLoginModel(authSvc *auth.Service) LoginModel {
	m := LoginModel{authService: authSvc, creds: &credentials{}}
	m.form = m.buildForm()

	return m
}

func (m LoginModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&m.creds.email).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return errors.New("enter a valid email")
					}
					return nil
				}),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.creds.password),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m LoginModel) Title() string     { return "Sign In" }
func (m LoginModel) ShortHelp() string { return "Enter: next | ctrl+c: quit" }

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(loginResultMsg); ok {
		m.busy = false
		if res.err != nil {
			m.err = res.err
			m.creds.password = ""
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		return m, func() tea.Msg { return LoggedInMsg{User: res.user} }
	}

	if m.busy {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.busy = true
	m.err = nil

	return m, m.loginCmd(m.creds.email, m.creds.password)
}

func (m LoginModel) View() string {
	content := lipgloss.NewStyle().Bold(true).Render("Expense Tracking") + "\n\n"

	if m.busy {
		content += "Signing in..."
	} else {
		content += m.form.View()
	}

	if m.err != nil {
		content += "\n\n" + errorStyle.Render(m.err.Error())
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}

type loginResultMsg struct {
	user *user.User
	err  error
}

func (m LoginModel) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		session, err := m.authService.Login(ctx, user.NormalizeEmail(email), password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return loginResultMsg{err: err}
			}

			return loginResultMsg{err: fmt.Errorf("signing in: %w", err)}
		}

		return loginResultMsg{user: session.User}
	}
}
