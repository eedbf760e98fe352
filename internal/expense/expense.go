package expense

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hadetan/expense-tracking/internal/category"
)

var (
	ErrNotFound          = errors.New("expense not found")
	ErrImmutable         = errors.New("approved expenses cannot be modified")
	ErrInvalidTransition = errors.New("only pending expenses can be approved or rejected")
	ErrForbidden         = errors.New("not allowed to access this expense")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrValidation        = errors.New("validation failed")
)

// Status is the review state of an expense.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}

	return false
}

// Submitter is the owning user as joined onto an expense.
type Submitter struct {
	ID    uuid.UUID
	Email string
	Name  *string
}

type Expense struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	CategoryID      uuid.UUID
	Category        *category.Category // Loaded via JOIN
	Submitter       *Submitter         // Loaded via JOIN
	Amount          decimal.Decimal
	Description     string
	Date            time.Time
	Status          Status
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Actor is the authenticated caller on whose behalf a service operation runs.
type Actor struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// ValidationError describes a rejected field value. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
