package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hadetan/expense-tracking/internal/expense"
)

type reviewState int

const (
	reviewStateDeciding reviewState = iota
	reviewStateRejecting
)

// ReviewModel walks an admin through the pending expenses one at a time, oldest first.
type ReviewModel struct {
	CommonModel
	expenseService *expense.Service

	state   reviewState
	queue   []*expense.Expense
	current *expense.Expense

	reasonInput textinput.Model

	reviewed int
	total    int
	loading  bool
	status   string
}

func NewReviewModel(common CommonModel, expenseSvc *expense.Service) ReviewModel {
	ti := textinput.New()
	ti.Placeholder = "Reason (at least 10 characters)"
	ti.CharLimit = 500
	ti.Width = 60

	return ReviewModel{
		CommonModel:    common,
		expenseService: expenseSvc,
		reasonInput:    ti,
		loading:        true,
	}
}

func (m ReviewModel) Title() string { return "Review Expenses" }

func (m ReviewModel) ShortHelp() string {
	if m.state == reviewStateRejecting {
		return "Enter: reject | Esc: cancel"
	}

	return "a: approve | r: reject | s: skip | Esc: back"
}

func (m ReviewModel) Init() tea.Cmd {
	return m.loadPendingCmd()
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPendingMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading expenses: %v", msg.err)
			return m, nil
		}

		// Listed newest first; review oldest first.
		for i, j := 0, len(msg.expenses)-1; i < j; i, j = i+1, j-1 {
			msg.expenses[i], msg.expenses[j] = msg.expenses[j], msg.expenses[i]
		}

		m.queue = msg.expenses
		m.total = len(m.queue)
		m.next()

		return m, nil

	case decisionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.reviewed++
		m.status = fmt.Sprintf("%s %s %s.", FormatAmount(msg.expense.Amount), msg.expense.Description, strings.ToLower(string(msg.expense.Status)))
		m.next()

		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		if m.state == reviewStateRejecting {
			return m.updateRejecting(msg)
		}

		return m.updateDeciding(msg)
	}

	return m, nil
}

func (m ReviewModel) updateDeciding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, Back
	case "a":
		if m.current != nil {
			return m, m.approveCmd(m.current)
		}
	case "r":
		if m.current != nil {
			m.state = reviewStateRejecting
			m.reasonInput.SetValue("")
			m.reasonInput.Focus()

			return m, textinput.Blink
		}
	case "s":
		m.next()
	}

	return m, nil
}

func (m ReviewModel) updateRejecting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state = reviewStateDeciding
		m.reasonInput.Blur()

		return m, nil
	case tea.KeyEnter:
		m.state = reviewStateDeciding
		m.reasonInput.Blur()

		return m, m.rejectCmd(m.current, m.reasonInput.Value())
	}

	var cmd tea.Cmd
	m.reasonInput, cmd = m.reasonInput.Update(msg)

	return m, cmd
}

func (m *ReviewModel) next() {
	if len(m.queue) == 0 {
		m.current = nil
		return
	}

	m.current = m.queue[0]
	m.queue = m.queue[1:]
}

func (m ReviewModel) View() string {
	style := lipgloss.NewStyle().Padding(2)

	if m.loading {
		return style.Render("Loading pending expenses...")
	}

	header := fmt.Sprintf("Pending review: %d reviewed, %d left\n\n", m.reviewed, len(m.queue)+boolToInt(m.current != nil))

	if m.current == nil {
		return style.Render(header + m.renderStatus() + "No pending expenses.\n\n(Esc to go back)")
	}

	e := m.current

	submitter, categoryName := "", ""
	if e.Submitter != nil {
		submitter = e.Submitter.Email
		if e.Submitter.Name != nil {
			submitter = fmt.Sprintf("%s <%s>", *e.Submitter.Name, e.Submitter.Email)
		}
	}

	if e.Category != nil {
		categoryName = e.Category.Name
	}

	card := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(fmt.Sprintf(
			"Submitted by: %s\nDate:         %s\nAmount:       %s\nCategory:     %s\nDescription:  %s",
			submitter, FormatDate(e.Date), FormatAmount(e.Amount), categoryName, e.Description,
		))

	content := header + m.renderStatus() + card + "\n\n"

	if m.state == reviewStateRejecting {
		content += "Rejection reason:\n" + m.reasonInput.View()
	} else {
		content += "(a) approve  (r) reject  (s) skip"
	}

	return style.Render(content)
}

func (m ReviewModel) renderStatus() string {
	if m.status == "" {
		return ""
	}

	return faintStyle.Render(m.status) + "\n\n"
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}

// Messages

type loadPendingMsg struct {
	expenses []*expense.Expense
	err      error
}

type decisionMsg struct {
	expense *expense.Expense
	err     error
}

func (m ReviewModel) loadPendingCmd() tea.Cmd {
	actor := m.actor()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		expenses, err := m.expenseService.ListAll(ctx, actor, expense.ListFilter{
			Status: new(expense.StatusPending),
		})

		return loadPendingMsg{expenses: expenses, err: err}
	}
}

func (m ReviewModel) approveCmd(e *expense.Expense) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.expenseService.Approve(ctx, e.ID)

		return decisionMsg{expense: updated, err: err}
	}
}

func (m ReviewModel) rejectCmd(e *expense.Expense, reason string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.expenseService.Reject(ctx, e.ID, reason)

		return decisionMsg{expense: updated, err: err}
	}
}
