package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hadetan/expense-tracking/cmd/tui/internal/view"
	"github.com/hadetan/expense-tracking/internal/analytics"
	analyticsStore "github.com/hadetan/expense-tracking/internal/analytics/store"
	"github.com/hadetan/expense-tracking/internal/auth"
	"github.com/hadetan/expense-tracking/internal/category"
	categoryStore "github.com/hadetan/expense-tracking/internal/category/store"
	"github.com/hadetan/expense-tracking/internal/config"
	"github.com/hadetan/expense-tracking/internal/database"
	"github.com/hadetan/expense-tracking/internal/expense"
	expenseStore "github.com/hadetan/expense-tracking/internal/expense/store"
	"github.com/hadetan/expense-tracking/internal/export"
	"github.com/hadetan/expense-tracking/internal/importer"
	"github.com/hadetan/expense-tracking/internal/user"
	userStore "github.com/hadetan/expense-tracking/internal/user/store"
)

type services struct {
	auth      *auth.Service
	expense   *expense.Service
	importer  *importer.Service
	export    *export.Service
	analytics *analytics.Service
}

type model struct {
	svc services

	common      view.CommonModel
	currentView View
	active      tea.Model

	login view.LoginModel
}

type View int

const (
	ViewLogin View = iota
	ViewMenu
	ViewImport
	ViewList
	ViewExport
	ViewReview
	ViewAnalytics
)

type menuItem struct {
	key   string
	label string
	view  View
	admin bool
}

var menu = []menuItem{
	{key: "1", label: "Import Expenses", view: ViewImport},
	{key: "2", label: "My Expenses", view: ViewList},
	{key: "3", label: "Export Expenses", view: ViewExport},
	{key: "4", label: "Review Pending Expenses", view: ViewReview, admin: true},
	{key: "5", label: "Analytics", view: ViewAnalytics, admin: true},
}

func initialModel() model {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	userSvc := user.NewService(userStore.New(db))
	categorySvc := category.NewService(categoryStore.New(db))
	expenseSvc := expense.NewService(expenseStore.New(db), categorySvc)

	svc := services{
		auth:      auth.NewService(userSvc, auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)),
		expense:   expenseSvc,
		importer:  importer.NewService(categorySvc, expenseSvc),
		export:    export.NewService(expenseSvc),
		analytics: analytics.NewService(analyticsStore.New(db)),
	}

	return model{
		svc:         svc,
		currentView: ViewLogin,
		login:       view.NewLoginModel(svc.auth),
	}
}

func (m model) Init() tea.Cmd {
	return m.login.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			return m.updateMenu(msg)
		}
	case view.LoggedInMsg:
		m.common = view.CommonModel{User: msg.User}
		m.currentView = ViewMenu

		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		m.active = nil

		return m, nil
	}

	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.login.Update(msg)
		m.login = newModel.(view.LoginModel)
	case ViewMenu:
	default:
		if m.active != nil {
			m.active, cmd = m.active.Update(msg)
		}
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "l":
		m.common = view.CommonModel{}
		m.currentView = ViewLogin
		m.login = view.NewLoginModel(m.svc.auth)

		return m, m.login.Init()
	}

	for _, item := range m.visibleMenu() {
		if item.key != msg.String() {
			continue
		}

		m.currentView = item.view
		m.active = m.newView(item.view)

		return m, m.active.Init()
	}

	return m, nil
}

func (m model) newView(v View) tea.Model {
	switch v {
	case ViewImport:
		return view.NewImportModel(m.common, m.svc.importer)
	case ViewList:
		return view.NewListModel(m.common, m.svc.expense)
	case ViewExport:
		return view.NewExportModel(m.common, m.svc.export)
	case ViewReview:
		return view.NewReviewModel(m.common, m.svc.expense)
	case ViewAnalytics:
		return view.NewAnalyticsModel(m.common, m.svc.analytics)
	}

	return nil
}

func (m model) visibleMenu() []menuItem {
	isAdmin := m.common.User != nil && m.common.User.IsAdmin

	items := make([]menuItem, 0, len(menu))
	for _, item := range menu {
		if item.admin && !isAdmin {
			continue
		}

		items = append(items, item)
	}

	return items
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.login.View()
	case ViewMenu:
		return m.viewMenu()
	}

	if m.active == nil {
		return "Unknown View"
	}

	return m.active.View()
}

func (m model) viewMenu() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Expense Tracking (%s, %s)\n\n", m.common.User.Email, m.common.User.Role())

	for _, item := range m.visibleMenu() {
		fmt.Fprintf(&b, "%s. %s\n", item.key, item.label)
	}

	b.WriteString("\nl. Sign out\nq. Quit")

	return lipgloss.NewStyle().Padding(2).Render(b.String())
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
