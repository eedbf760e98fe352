package importer

import (
	"sort"

	"github.com/hadetan/expense-tracking/internal/expense"
)

// GeneralField labels failures that happened while persisting an otherwise valid row.
const GeneralField = "general"

type Summary struct {
	Total      int
	Successful int
	Failed     int
}

type FailedRow struct {
	Row   int
	Field string
	Error string
}

// Report is the result of one import. Every decoded row ends up either among the successful
// expenses or, once per problem, among the failed rows.
type Report struct {
	Summary            Summary
	SuccessfulExpenses []*expense.Expense
	FailedRows         []FailedRow
}

// outcome is the result of processing a single row. Exactly one of its fields is set.
type outcome struct {
	row     int
	created *expense.Expense
	invalid []ValidationError
	failure string
}

func buildReport(total int, outcomes []outcome) *Report {
	report := &Report{
		Summary:            Summary{Total: total},
		SuccessfulExpenses: []*expense.Expense{},
		FailedRows:         []FailedRow{},
	}

	var persistence []FailedRow

	for _, o := range outcomes {
		switch {
		case o.created != nil:
			report.SuccessfulExpenses = append(report.SuccessfulExpenses, o.created)
		case len(o.invalid) > 0:
			for _, v := range o.invalid {
				report.FailedRows = append(report.FailedRows, FailedRow{Row: v.Row, Field: v.Field, Error: v.Message})
			}
		default:
			persistence = append(persistence, FailedRow{Row: o.row, Field: GeneralField, Error: o.failure})
		}
	}

	report.FailedRows = append(report.FailedRows, persistence...)
	sort.SliceStable(report.FailedRows, func(i, j int) bool {
		return report.FailedRows[i].Row < report.FailedRows[j].Row
	})

	report.Summary.Successful = len(report.SuccessfulExpenses)
	report.Summary.Failed = len(report.FailedRows)

	return report
}
