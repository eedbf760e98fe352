package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/hadetan/expense-tracking/internal/expense"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateEdit
)

var (
	statusFilters = []*expense.Status{nil, new(expense.StatusPending), new(expense.StatusApproved), new(expense.StatusRejected)}
	dateFilters   = []expense.DateFilter{expense.DateFilterAll, expense.DateFilterToday, expense.DateFilterWeek, expense.DateFilterMonth}
)

// editFields holds the form bindings. It is shared by every copy of the model.
type editFields struct {
	amount      string
	description string
	date        string
}

type ListModel struct {
	CommonModel
	expenseService *expense.Service

	state    listState
	table    table.Model
	expenses []*expense.Expense
	page     expense.Pagination
	form     *huh.Form
	edit     *editFields

	statusFilterIdx int
	dateFilterIdx   int
	pageNum         int

	loading bool
	err     error
	status  string
}

func NewListModel(common CommonModel, expenseSvc *expense.Service) ListModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Status", Width: 10},
		{Title: "Amount", Width: 10},
		{Title: "Category", Width: 16},
		{Title: "Description", Width: 36},
		{Title: "Rejection Reason", Width: 30},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
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

	return ListModel{
		CommonModel:    common,
		expenseService: expenseSvc,
		table:          t,
		edit:           &editFields{},
		pageNum:        1,
		loading:        true,
	}
}

func (m ListModel) Title() string { return "My Expenses" }

func (m ListModel) ShortHelp() string {
	if m.state == listStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit | s: status | d: date | n/p: page | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.expenses = msg.page.Expenses
		m.page = msg.page.Pagination
		m.refreshTable()

		return m, nil

	case listSaveMsg:
		m.status = "Expense updated and resubmitted for approval."
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "e":
			return m.enterEditMode()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(statusFilters)
			m.pageNum = 1

			return m, m.loadCmd()
		case "d":
			m.dateFilterIdx = (m.dateFilterIdx + 1) % len(dateFilters)
			m.pageNum = 1

			return m, m.loadCmd()
		case "n":
			if m.page.HasNextPage {
				m.pageNum++
				return m, m.loadCmd()
			}
		case "p":
			if m.page.HasPreviousPage {
				m.pageNum--
				return m, m.loadCmd()
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.expenses) {
		return m, nil
	}

	e := m.expenses[idx]
	if e.Status == expense.StatusApproved {
		m.status = "Approved expenses cannot be edited."
		return m, nil
	}

	m.edit.amount = FormatAmount(e.Amount)
	m.edit.description = e.Description
	m.edit.date = FormatDate(e.Date)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.edit.amount).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil || !d.IsPositive() {
						return errors.New("amount must be a positive number")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				CharLimit(500).
				Value(&m.edit.description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("description cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.edit.date).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, s); err != nil {
						return errors.New("use YYYY-MM-DD")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateEdit
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = listStateBrowse
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

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading expenses...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	statusLabels := []string{"All", "Pending", "Approved", "Rejected"}
	dateLabels := []string{"All Time", "Today", "This Week", "This Month"}

	header := fmt.Sprintf(
		"Filter: [s] Status: %s | [d] Date: %s | Page %d of %d (%d expenses)",
		activeStyle(statusLabels[m.statusFilterIdx]),
		activeStyle(dateLabels[m.dateFilterIdx]),
		m.page.CurrentPage,
		max(m.page.TotalPages, 1),
		m.page.TotalCount,
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == listStateEdit && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Edit Expense\n\nSaving sends it back for approval.\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m ListModel) filter() (expense.ListFilter, error) {
	filter := expense.ListFilter{
		Status: statusFilters[m.statusFilterIdx],
		Page:   m.pageNum,
		Limit:  expense.DefaultPageSize,
	}

	var err error
	filter.StartDate, filter.EndDate, err = dateFilters[m.dateFilterIdx].Range(time.Now(), nil, nil)

	return filter, err
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.expenses))
	for _, e := range m.expenses {
		categoryName, reason := "", ""
		if e.Category != nil {
			categoryName = e.Category.Name
		}

		if e.RejectionReason != nil {
			reason = *e.RejectionReason
		}

		rows = append(rows, table.Row{
			FormatDate(e.Date),
			string(e.Status),
			FormatAmount(e.Amount),
			categoryName,
			truncate(e.Description, 36),
			truncate(reason, 30),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadListMsg struct {
	page *expense.Page
	err  error
}

func (m ListModel) loadCmd() tea.Cmd {
	actor := m.actor()

	return func() tea.Msg {
		filter, err := m.filter()
		if err != nil {
			return loadListMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		page, err := m.expenseService.List(ctx, actor, filter)

		return loadListMsg{page: page, err: err}
	}
}

type listSaveMsg struct {
	err error
}

func (m ListModel) saveCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.expenses) {
		return nil
	}

	id := m.expenses[idx].ID
	actor := m.actor()
	fields := *m.edit

	return func() tea.Msg {
		amount, err := decimal.NewFromString(strings.TrimSpace(fields.amount))
		if err != nil {
			return listSaveMsg{err: err}
		}

		date, err := time.Parse(time.DateOnly, fields.date)
		if err != nil {
			return listSaveMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		_, err = m.expenseService.Update(ctx, actor, id, expense.UpdateParams{
			Amount:      &amount,
			Description: &fields.description,
			Date:        &date,
		})

		return listSaveMsg{err: err}
	}
}
