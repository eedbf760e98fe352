package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hadetan/expense-tracking/internal/category"
	"github.com/hadetan/expense-tracking/internal/expense"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanExpense reads a row selected with selectExpenseColumns.
func scanExpense(s scanner) (*expense.Expense, error) {
	var (
		e         expense.Expense
		cat       category.Category
		submitter expense.Submitter
		status    string
	)

	if err := s.Scan(
		&e.ID, &e.UserID, &e.CategoryID, &e.Amount, &e.Description, &e.Date, &status, &e.RejectionReason,
		&e.CreatedAt, &e.UpdatedAt,
		&cat.Name, &cat.CreatedAt,
		&submitter.Email, &submitter.Name,
	); err != nil {
		return nil, err
	}

	e.Status = expense.Status(status)

	cat.ID = e.CategoryID
	cat.OwnerID = e.UserID
	e.Category = &cat

	submitter.ID = e.UserID
	e.Submitter = &submitter

	return &e, nil
}

const selectExpenseColumns = `
	e.id, e.user_id, e.category_id, e.amount, e.description, e.date, e.status, e.rejection_reason,
	e.created_at, e.updated_at,
	c.name, c.created_at,
	u.email, u.name
`

const fromExpenses = `
	FROM expenses e
	JOIN categories c ON c.id = e.category_id
	JOIN users u ON u.id = e.user_id
`

func (s *Store) CreateExpense(ctx context.Context, e *expense.Expense) error {
	query := `
		INSERT INTO expenses (user_id, category_id, amount, description, date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.UserID,
		e.CategoryID,
		e.Amount,
		e.Description,
		e.Date,
		e.Status,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

func (s *Store) GetExpense(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + fromExpenses + `WHERE e.id = $1`

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expense.ErrNotFound
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	return e, nil
}

func (s *Store) ListExpenses(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, int, error) {
	where := ` WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.UserID != nil {
		where += fmt.Sprintf(" AND e.user_id = $%d", argIdx)

		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.Status != nil {
		where += fmt.Sprintf(" AND e.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.CategoryID != nil {
		where += fmt.Sprintf(" AND e.category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND e.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND e.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*)`+fromExpenses+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting expenses: %w", err)
	}

	query := `SELECT ` + selectExpenseColumns + fromExpenses + where + ` ORDER BY e.date DESC, e.created_at DESC`

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)

		args = append(args, filter.Limit, filter.Offset())
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating expenses: %w", err)
	}

	return expenses, total, nil
}

func (s *Store) UpdateExpense(ctx context.Context, e *expense.Expense) error {
	query := `
		UPDATE expenses
		SET category_id = $1, amount = $2, description = $3, date = $4, status = $5,
			rejection_reason = $6, updated_at = NOW()
		WHERE id = $7 AND status <> 'APPROVED'
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.CategoryID,
		e.Amount,
		e.Description,
		e.Date,
		e.Status,
		e.RejectionReason,
		e.ID,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return expense.ErrImmutable
		}

		return fmt.Errorf("updating expense: %w", err)
	}

	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status expense.Status, reason *string) error {
	query := `
		UPDATE expenses
		SET status = $1, rejection_reason = $2, updated_at = NOW()
		WHERE id = $3 AND status = 'PENDING'
	`

	res, err := s.db.ExecContext(ctx, query, status, reason, id)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	if n > 0 {
		return nil
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM expenses WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("checking expense: %w", err)
	}

	if !exists {
		return expense.ErrNotFound
	}

	return expense.ErrInvalidTransition
}
