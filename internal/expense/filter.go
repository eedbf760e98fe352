package expense

import (
	"time"

	"github.com/google/uuid"
)

// DateFilter selects a date window for listing relative to the current day.
type DateFilter string

const (
	DateFilterToday  DateFilter = "today"
	DateFilterWeek   DateFilter = "week"
	DateFilterMonth  DateFilter = "month"
	DateFilterCustom DateFilter = "custom"
	DateFilterAll    DateFilter = "all"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type ListFilter struct {
	UserID     *uuid.UUID
	Status     *Status
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	// Page is 1-based. A zero Limit returns every matching expense.
	Page  int
	Limit int
}

func (f ListFilter) Offset() int {
	if f.Page < 1 || f.Limit < 1 {
		return 0
	}

	return (f.Page - 1) * f.Limit
}

// Range resolves the filter into an inclusive window. Custom (and an empty filter) use the
// explicit bounds, with the end bound widened to the end of its day.
func (f DateFilter) Range(now time.Time, start, end *time.Time) (*time.Time, *time.Time, error) {
	switch f {
	case DateFilterToday:
		from, to := StartOfDay(now), EndOfDay(now)
		return &from, &to, nil
	case DateFilterWeek:
		offset := (int(now.UTC().Weekday()) + 6) % 7
		from := StartOfDay(now).AddDate(0, 0, -offset)
		to := now.UTC()

		return &from, &to, nil
	case DateFilterMonth:
		n := now.UTC()
		from := time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, time.UTC)

		return &from, &n, nil
	case DateFilterAll:
		return nil, nil, nil
	case DateFilterCustom, "":
		if end != nil {
			to := EndOfDay(*end)
			end = &to
		}

		if start != nil && end != nil && start.After(*end) {
			return nil, nil, &ValidationError{Field: "startDate", Message: "Start date must be before end date"}
		}

		return start, end, nil
	}

	return nil, nil, &ValidationError{Field: "dateFilter", Message: "Invalid date filter"}
}

type Pagination struct {
	CurrentPage     int
	TotalPages      int
	TotalCount      int
	Limit           int
	HasNextPage     bool
	HasPreviousPage bool
}

type Page struct {
	Expenses   []*Expense
	Pagination Pagination
}

func newPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Pagination{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalCount:      total,
		Limit:           limit,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
