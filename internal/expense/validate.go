package expense

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	MaxDescriptionLength  = 500
	MinRejectionReasonLen = 10
)

func validateAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return decimal.Zero, &ValidationError{Field: "amount", Message: "Amount must be greater than 0"}
	}

	return amount, nil
}

func validateDescription(description string) (string, error) {
	description = strings.TrimSpace(description)

	switch {
	case description == "":
		return "", &ValidationError{Field: "description", Message: "Description is required"}
	case utf8.RuneCountInString(description) > MaxDescriptionLength:
		return "", &ValidationError{Field: "description", Message: "Description must not exceed 500 characters"}
	}

	return description, nil
}

// validateDate accepts any moment up to the end of the current UTC day.
func validateDate(date, now time.Time) error {
	if date.IsZero() {
		return &ValidationError{Field: "date", Message: "Date is required"}
	}

	if date.After(EndOfDay(now)) {
		return &ValidationError{Field: "date", Message: "Expense date cannot be in the future"}
	}

	return nil
}

func validateRejectionReason(reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if utf8.RuneCountInString(reason) < MinRejectionReasonLen {
		return "", &ValidationError{Field: "reason", Message: "Rejection reason must be at least 10 characters"}
	}

	return reason, nil
}

// StartOfDay returns UTC midnight of t's UTC calendar day.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last representable instant of t's UTC calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
