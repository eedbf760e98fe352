package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/hadetan/expense-tracking/internal/expense"
)

// DateLayout is the dd-mm-yyyy form the importer accepts.
const DateLayout = "02-01-2006"

const TemplateFilename = "expense_template.csv"

var header = []string{"Date", "Amount", "Category", "Description"}

var sampleRows = [][]string{
	{"22-10-2025", "150.00", "Travel", "Taxi to client meeting"},
	{"21-10-2025", "45.50", "Meals", "Team lunch"},
	{"20-10-2025", "299.99", "Software", "Adobe Creative Cloud subscription"},
}

// Lister returns every expense the actor may see that matches the filter.
type Lister interface {
	ListAll(ctx context.Context, actor expense.Actor, filter expense.ListFilter) ([]*expense.Expense, error)
}

// Service writes expenses as CSV in the bulk upload format, so an export can be edited and
// uploaded again.
type Service struct {
	expenses Lister
}

func NewService(expenses Lister) *Service {
	return &Service{expenses: expenses}
}

// Export writes the expenses matching filter to w and returns how many were written.
func (s *Service) Export(ctx context.Context, actor expense.Actor, filter expense.ListFilter, w io.Writer) (int, error) {
	expenses, err := s.expenses.ListAll(ctx, actor, filter)
	if err != nil {
		return 0, fmt.Errorf("listing expenses: %w", err)
	}

	if err := Write(w, expenses); err != nil {
		return 0, err
	}

	return len(expenses), nil
}

// Write encodes expenses under the upload header with a trailing Status column, which the
// importer ignores.
func Write(w io.Writer, expenses []*expense.Expense) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(append(append([]string{}, header...), "Status")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, e := range expenses {
		categoryName := ""
		if e.Category != nil {
			categoryName = e.Category.Name
		}

		record := []string{
			e.Date.UTC().Format(DateLayout),
			e.Amount.StringFixed(2),
			categoryName,
			e.Description,
			string(e.Status),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing expense %s: %w", e.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteTemplate writes the upload header followed by a few sample rows.
func WriteTemplate(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if err := cw.WriteAll(sampleRows); err != nil {
		return fmt.Errorf("writing sample rows: %w", err)
	}

	return nil
}

// Filename names an export produced at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("expenses_%s.csv", now.UTC().Format(time.DateOnly))
}
