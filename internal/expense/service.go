package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hadetan/expense-tracking/internal/category"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, id uuid.UUID) (*Expense, error)
	// ListExpenses returns the requested page together with the total number of matches.
	ListExpenses(ctx context.Context, filter ListFilter) ([]*Expense, int, error)
	UpdateExpense(ctx context.Context, e *Expense) error
	// UpdateStatus moves a PENDING expense to status. It returns ErrInvalidTransition when the
	// expense exists but is no longer PENDING.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, reason *string) error
}

// CategoryResolver looks up a category owned by a given user.
type CategoryResolver interface {
	Get(ctx context.Context, id, ownerID uuid.UUID) (*category.Category, error)
}

type Service struct {
	repo       Repository
	categories CategoryResolver
	now        func() time.Time
}

func NewService(repo Repository, categories CategoryResolver) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		now:        time.Now,
	}
}

type CreateParams struct {
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

// UpdateParams holds the fields an owner may change. Nil fields are left untouched.
type UpdateParams struct {
	CategoryID  *uuid.UUID
	Amount      *decimal.Decimal
	Description *string
	Date        *time.Time
}

// Create stores a new PENDING expense for params.UserID in one of that user's categories.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Expense, error) {
	amount, err := validateAmount(params.Amount)
	if err != nil {
		return nil, err
	}

	description, err := validateDescription(params.Description)
	if err != nil {
		return nil, err
	}

	if err := validateDate(params.Date, s.now()); err != nil {
		return nil, err
	}

	cat, err := s.resolveCategory(ctx, params.CategoryID, params.UserID)
	if err != nil {
		return nil, err
	}

	e := &Expense{
		UserID:      params.UserID,
		CategoryID:  cat.ID,
		Category:    cat,
		Amount:      amount,
		Description: description,
		Date:        params.Date.UTC(),
		Status:      StatusPending,
	}
	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// Get returns the expense if the actor owns it or is an admin.
func (s *Service) Get(ctx context.Context, actor Actor, id uuid.UUID) (*Expense, error) {
	e, err := s.repo.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin && e.UserID != actor.UserID {
		return nil, ErrForbidden
	}

	return e, nil
}

// List pages through expenses visible to the actor: employees only see their own.
func (s *Service) List(ctx context.Context, actor Actor, filter ListFilter) (*Page, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}

	switch {
	case filter.Limit < 1:
		filter.Limit = DefaultPageSize
	case filter.Limit > MaxPageSize:
		filter.Limit = MaxPageSize
	}

	scope(actor, &filter)

	expenses, total, err := s.repo.ListExpenses(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &Page{
		Expenses:   expenses,
		Pagination: newPagination(filter.Page, filter.Limit, total),
	}, nil
}

// ListAll returns every expense visible to the actor matching the filter, ignoring paging.
func (s *Service) ListAll(ctx context.Context, actor Actor, filter ListFilter) ([]*Expense, error) {
	filter.Page, filter.Limit = 0, 0
	scope(actor, &filter)

	expenses, _, err := s.repo.ListExpenses(ctx, filter)

	return expenses, err
}

func scope(actor Actor, filter *ListFilter) {
	if !actor.IsAdmin {
		filter.UserID = &actor.UserID
	}
}

// Update applies an owner's edit. Editing sends the expense back to PENDING and clears any
// rejection reason; approved expenses cannot be edited.
func (s *Service) Update(ctx context.Context, actor Actor, id uuid.UUID, params UpdateParams) (*Expense, error) {
	e, err := s.repo.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	if e.UserID != actor.UserID {
		return nil, ErrForbidden
	}

	if e.Status == StatusApproved {
		return nil, ErrImmutable
	}

	if params.Amount != nil {
		if e.Amount, err = validateAmount(*params.Amount); err != nil {
			return nil, err
		}
	}

	if params.Description != nil {
		if e.Description, err = validateDescription(*params.Description); err != nil {
			return nil, err
		}
	}

	if params.Date != nil {
		if err := validateDate(*params.Date, s.now()); err != nil {
			return nil, err
		}

		e.Date = params.Date.UTC()
	}

	if params.CategoryID != nil && *params.CategoryID != e.CategoryID {
		cat, err := s.resolveCategory(ctx, *params.CategoryID, e.UserID)
		if err != nil {
			return nil, err
		}

		e.CategoryID = cat.ID
		e.Category = cat
	}

	e.Status = StatusPending
	e.RejectionReason = nil

	if err := s.repo.UpdateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*Expense, error) {
	if err := s.repo.UpdateStatus(ctx, id, StatusApproved, nil); err != nil {
		return nil, err
	}

	return s.repo.GetExpense(ctx, id)
}

func (s *Service) Reject(ctx context.Context, id uuid.UUID, reason string) (*Expense, error) {
	reason, err := validateRejectionReason(reason)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusRejected, &reason); err != nil {
		return nil, err
	}

	return s.repo.GetExpense(ctx, id)
}

func (s *Service) resolveCategory(ctx context.Context, id, ownerID uuid.UUID) (*category.Category, error) {
	cat, err := s.categories.Get(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return nil, ErrInvalidCategory
		}

		return nil, fmt.Errorf("resolving category: %w", err)
	}

	return cat, nil
}
