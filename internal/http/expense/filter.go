package expense

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hadetan/expense-tracking/internal/expense"
)

// ParseListFilter reads the list query parameters: status, categoryId, startDate, endDate,
// dateFilter, page and limit. Unparseable page and limit values fall back to the defaults.
func ParseListFilter(q url.Values, now time.Time) (expense.ListFilter, error) {
	var filter expense.ListFilter

	if s := q.Get("status"); s != "" {
		status := expense.Status(strings.ToUpper(s))
		if !status.Valid() {
			return filter, &expense.ValidationError{Field: "status", Message: "Invalid status"}
		}

		filter.Status = &status
	}

	if s := q.Get("categoryId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return filter, &expense.ValidationError{Field: "categoryId", Message: "Invalid category id"}
		}

		filter.CategoryID = &id
	}

	start, err := parseOptionalDate(q.Get("startDate"), "startDate")
	if err != nil {
		return filter, err
	}

	end, err := parseOptionalDate(q.Get("endDate"), "endDate")
	if err != nil {
		return filter, err
	}

	filter.StartDate, filter.EndDate, err = expense.DateFilter(q.Get("dateFilter")).Range(now, start, end)
	if err != nil {
		return filter, err
	}

	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	return filter, nil
}

func parseOptionalDate(s, field string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	t, err := parseDate(s)
	if err != nil {
		return nil, &expense.ValidationError{Field: field, Message: "Invalid " + field}
	}

	return &t, nil
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}

	return t.UTC(), nil
}
