package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hadetan/expense-tracking/internal/importer"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	importService *importer.Service

	state      importState
	filePicker filepicker.Model
	failures   table.Model

	file   string
	report *importer.Report
	err    error
}

func NewImportModel(common CommonModel, impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".xlsx", ".xls"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	failures := table.New(
		table.WithColumns([]table.Column{
			{Title: "Row", Width: 5},
			{Title: "Field", Width: 12},
			{Title: "Error", Width: 50},
		}),
		table.WithHeight(10),
	)

	return ImportModel{
		CommonModel:   common,
		importService: impSvc,
		filePicker:    fp,
		failures:      failures,
	}
}

func (m ImportModel) Title() string { return "Bulk Import" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateResult {
		return "Esc: import another file | ↑/↓: scroll failures"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateResult {
			var cmd tea.Cmd
			m.failures, cmd = m.failures.Update(msg)

			return m, cmd
		}

	case importResultMsg:
		m.state = importStateResult
		m.report = msg.report
		m.err = msg.err

		if msg.report != nil {
			m.failures.SetRows(failureRows(msg.report))
			m.failures.Focus()
		}

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.file = path

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateResult:
		m.state = importStateFilePick
		m.report = nil
		m.err = nil
		m.failures.Blur()

		return m, m.filePicker.Init()
	case importStateImporting:
		return m, nil
	}

	return m, Back
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			"Select a CSV or Excel file (Date, Amount, Category, Description):\n\n" + m.filePicker.View(),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Importing %s...", filepath.Base(m.file)))
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)

	if m.err != nil {
		return style.Render(errorStyle.Render(fmt.Sprintf("Import failed: %v", m.err)) + "\n\n(Esc to go back)")
	}

	s := m.report.Summary
	summary := fmt.Sprintf("%s\n\nRows: %d  Imported: %s  Failed: %s",
		filepath.Base(m.file),
		s.Total,
		successStyle.Render(strconv.Itoa(s.Successful)),
		errorStyle.Render(strconv.Itoa(s.Failed)),
	)

	if len(m.report.FailedRows) == 0 {
		return style.Render(summary + "\n\n" + successStyle.Render("Every row was imported as a pending expense."))
	}

	return style.Render(summary + "\n\n" + m.failures.View())
}

func failureRows(report *importer.Report) []table.Row {
	rows := make([]table.Row, 0, len(report.FailedRows))
	for _, f := range report.FailedRows {
		rows = append(rows, table.Row{strconv.Itoa(f.Row), f.Field, f.Error})
	}

	return rows
}

// Messages

type importResultMsg struct {
	report *importer.Report
	err    error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	ownerID := m.User.ID

	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return importResultMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		report, err := m.importService.Import(ctx, ownerID, data, importer.ContentTypeForFilename(path))

		return importResultMsg{report: report, err: err}
	}
}
