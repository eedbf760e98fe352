package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hadetan/expense-tracking/internal/analytics"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) SumApproved(ctx context.Context, r analytics.Range) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE status = 'APPROVED' AND date >= $1 AND date <= $2
	`

	var total decimal.Decimal
	if err := s.db.QueryRowContext(ctx, query, r.Start, r.End).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("summing approved expenses: %w", err)
	}

	return total, nil
}

func (s *Store) CountPending(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses WHERE status = 'PENDING'`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting pending expenses: %w", err)
	}

	return n, nil
}

func (s *Store) ApprovedByCategory(ctx context.Context, r analytics.Range) ([]analytics.CategoryTotal, error) {
	query := `
		SELECT c.id, c.name, SUM(e.amount)
		FROM expenses e
		JOIN categories c ON c.id = e.category_id
		WHERE e.status = 'APPROVED' AND e.date >= $1 AND e.date <= $2
		GROUP BY c.id, c.name
	`

	rows, err := s.db.QueryContext(ctx, query, r.Start, r.End)
	if err != nil {
		return nil, fmt.Errorf("totalling categories: %w", err)
	}
	defer rows.Close()

	var totals []analytics.CategoryTotal

	for rows.Next() {
		var t analytics.CategoryTotal
		if err := rows.Scan(&t.CategoryID, &t.CategoryName, &t.Total); err != nil {
			return nil, fmt.Errorf("scanning category total: %w", err)
		}

		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category totals: %w", err)
	}

	return totals, nil
}
