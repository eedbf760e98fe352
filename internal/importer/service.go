package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hadetan/expense-tracking/internal/category"
	"github.com/hadetan/expense-tracking/internal/expense"
)

const fallbackFailure = "Failed to create expense"

var (
	errInvalidDate   = errors.New("invalid date")
	errInvalidAmount = errors.New("invalid amount")
)

type CategoryStore interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]*category.Category, error)
	FindByName(ctx context.Context, ownerID uuid.UUID, name string) (*category.Category, error)
	Create(ctx context.Context, ownerID uuid.UUID, name string) (*category.Category, error)
}

type ExpenseStore interface {
	Create(ctx context.Context, params expense.CreateParams) (*expense.Expense, error)
}

type Service struct {
	categories CategoryStore
	expenses   ExpenseStore
	now        func() time.Time
}

type Option func(*Service)

// WithClock replaces the clock used to reject future-dated rows.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(categories CategoryStore, expenses ExpenseStore, opts ...Option) *Service {
	s := &Service{
		categories: categories,
		expenses:   expenses,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Import decodes an uploaded file and creates a PENDING expense owned by ownerID for every
// valid row. Rows are processed one after another so a category created for one row is reused
// by the rows after it. Row failures are reported, never returned; only problems with the file
// as a whole abort the import.
func (s *Service) Import(ctx context.Context, ownerID uuid.UUID, data []byte, contentType string) (*Report, error) {
	rows, err := Decode(data, contentType)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	now := s.now()

	cache, err := s.loadCategories(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	outcomes := make([]outcome, 0, len(rows))

	for i, row := range rows {
		rowNum := i + 2 // header is row 1

		if errs := ValidateRow(row, rowNum, now); len(errs) > 0 {
			outcomes = append(outcomes, outcome{row: rowNum, invalid: errs})
			continue
		}

		created, err := s.persist(ctx, ownerID, row, cache)
		if err != nil {
			slog.WarnContext(ctx, "failed to import row", "row", rowNum, "owner_id", ownerID, "error", err)
			outcomes = append(outcomes, outcome{row: rowNum, failure: failureMessage(err)})

			continue
		}

		outcomes = append(outcomes, outcome{row: rowNum, created: created})
	}

	return buildReport(len(rows), outcomes), nil
}

type categoryCache map[string]*category.Category

func (s *Service) loadCategories(ctx context.Context, ownerID uuid.UUID) (categoryCache, error) {
	existing, err := s.categories.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}

	cache := make(categoryCache, len(existing))
	for _, c := range existing {
		cache[category.Key(c.Name)] = c
	}

	return cache, nil
}

func (s *Service) persist(ctx context.Context, ownerID uuid.UUID, row RawRow, cache categoryCache) (*expense.Expense, error) {
	date, ok := ParseDate(row.Date)
	if !ok {
		return nil, errInvalidDate
	}

	amount, ok := parseAmount(row.Amount)
	if !ok {
		return nil, errInvalidAmount
	}

	cat, err := s.resolveCategory(ctx, ownerID, row.Category, cache)
	if err != nil {
		return nil, err
	}

	return s.expenses.Create(ctx, expense.CreateParams{
		UserID:      ownerID,
		CategoryID:  cat.ID,
		Amount:      amount,
		Description: strings.TrimSpace(row.Description),
		Date:        date,
	})
}

func (s *Service) resolveCategory(ctx context.Context, ownerID uuid.UUID, name string, cache categoryCache) (*category.Category, error) {
	key := category.Key(name)
	if c, ok := cache[key]; ok {
		return c, nil
	}

	c, err := s.categories.Create(ctx, ownerID, strings.TrimSpace(name))
	if errors.Is(err, category.ErrDuplicate) {
		// Created concurrently, e.g. by another import of the same user.
		c, err = s.categories.FindByName(ctx, ownerID, name)
	}

	if err != nil {
		return nil, err
	}

	cache[key] = c

	return c, nil
}

// failureMessage turns a persistence error into report text. Errors without a message get the
// generic one.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, errInvalidDate):
		return "Invalid date format"
	case errors.Is(err, errInvalidAmount):
		return "Amount must be a valid number"
	}

	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}

	return fallbackFailure
}
