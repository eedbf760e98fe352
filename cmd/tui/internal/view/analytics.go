package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hadetan/expense-tracking/internal/analytics"
)

const barWidth = 30

type analyticsState int

const (
	analyticsStateTimeframe analyticsState = iota
	analyticsStateLoading
	analyticsStateResult
)

type AnalyticsModel struct {
	CommonModel
	analyticsService *analytics.Service

	state           analyticsState
	timeframePicker TimeframePicker

	summary *analytics.Summary
	err     error
}

func NewAnalyticsModel(common CommonModel, analyticsSvc *analytics.Service) AnalyticsModel {
	return AnalyticsModel{
		CommonModel:      common,
		analyticsService: analyticsSvc,
		timeframePicker:  NewTimeframePicker(TimeframeThisMonth),
	}
}

func (m AnalyticsModel) Title() string { return "Analytics" }

func (m AnalyticsModel) ShortHelp() string {
	if m.state == analyticsStateResult {
		return "Esc: pick another range"
	}

	return "Esc: back | Enter: select"
}

func (m AnalyticsModel) Init() tea.Cmd {
	return nil
}

func (m AnalyticsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.state = analyticsStateLoading
		return m, m.loadCmd(msg)

	case summaryMsg:
		m.state = analyticsStateResult
		m.summary = msg.summary
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case analyticsStateResult:
			if msg.Type == tea.KeyEsc {
				m.state = analyticsStateTimeframe
				m.timeframePicker.Reset()
			}

			return m, nil
		case analyticsStateTimeframe:
			if msg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
				return m, Back
			}
		}
	}

	if m.state != analyticsStateTimeframe {
		return m, nil
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m AnalyticsModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case analyticsStateTimeframe:
		return style.Render(m.timeframePicker.View())
	case analyticsStateLoading:
		return style.Render("Loading analytics...")
	}

	if m.err != nil {
		return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	s := m.summary

	trend := fmt.Sprintf("%+.1f%%", s.TrendPercentage)
	if s.TrendPercentage > 0 {
		trend = errorStyle.Render(trend)
	} else {
		trend = successStyle.Render(trend)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "This month:        %s\n", FormatAmount(s.CurrentMonthTotal))
	fmt.Fprintf(&b, "Last month:        %s\n", FormatAmount(s.PreviousMonthTotal))
	fmt.Fprintf(&b, "Trend:             %s\n", trend)
	fmt.Fprintf(&b, "Pending approvals: %d\n\n", s.PendingApprovalsCount)

	fmt.Fprintf(&b, "Approved by category, %s to %s:\n\n", FormatDate(s.DateRange.Start), FormatDate(s.DateRange.End))

	if len(s.TotalByCategory) == 0 {
		b.WriteString(faintStyle.Render("No approved expenses in this range."))
	}

	for _, ct := range s.TotalByCategory {
		filled := int(ct.Percentage / 100 * barWidth)
		fmt.Fprintf(&b, "%-16s %s%s %10s %6.2f%%\n",
			truncate(ct.CategoryName, 16),
			activeStyle(strings.Repeat("█", filled)),
			strings.Repeat(" ", barWidth-filled),
			FormatAmount(ct.Total),
			ct.Percentage,
		)
	}

	return style.Render(b.String())
}

// Messages

type summaryMsg struct {
	summary *analytics.Summary
	err     error
}

func (m AnalyticsModel) loadCmd(tf TimeframeSelectedMsg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		start, end := &tf.Start, &tf.End
		if tf.All {
			// From the beginning of time up to now.
			start, end = new(time.Time{}), nil
		}

		summary, err := m.analyticsService.Summary(ctx, start, end)

		return summaryMsg{summary: summary, err: err}
	}
}
