package importer

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const maxDescriptionLength = 500

// ValidationError is a field-level problem found in one row.
type ValidationError struct {
	Row     int
	Field   string
	Message string
}

// ValidateRow checks every field of row independently and returns all problems found, in
// field order. rowNum is echoed on every error. Dates strictly after now are rejected.
func ValidateRow(row RawRow, rowNum int, now time.Time) []ValidationError {
	var errs []ValidationError

	fail := func(field, msg string) {
		errs = append(errs, ValidationError{Row: rowNum, Field: field, Message: msg})
	}

	if date := strings.TrimSpace(row.Date); date == "" {
		fail("date", "Date is required")
	} else if t, ok := ParseDate(date); !ok {
		fail("date", "Invalid date format. Expected dd-mm-yyyy")
	} else if t.After(now) {
		fail("date", "Date cannot be in the future")
	}

	if amount := strings.TrimSpace(row.Amount); amount == "" {
		fail("amount", "Amount is required")
	} else if d, ok := parseAmount(amount); !ok {
		fail("amount", "Amount must be a valid number")
	} else if !d.IsPositive() {
		fail("amount", "Amount must be greater than 0")
	}

	if strings.TrimSpace(row.Category) == "" {
		fail("category", "Category is required")
	}

	if description := strings.TrimSpace(row.Description); description == "" {
		fail("description", "Description is required")
	} else if utf8.RuneCountInString(description) > maxDescriptionLength {
		fail("description", "Description must not exceed 500 characters")
	}

	return errs
}

// parseAmount reads a decimal amount rounded to cents.
func parseAmount(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, false
	}

	return d.Round(2), true
}
