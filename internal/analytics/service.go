package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=analytics
type Repository interface {
	// SumApproved totals approved expenses dated within r.
	SumApproved(ctx context.Context, r Range) (decimal.Decimal, error)
	CountPending(ctx context.Context) (int, error)
	ApprovedByCategory(ctx context.Context, r Range) ([]CategoryTotal, error)
}

type CategoryTotal struct {
	CategoryID   uuid.UUID
	CategoryName string
	Total        decimal.Decimal
	Percentage   float64
}

type Summary struct {
	CurrentMonthTotal     decimal.Decimal
	PreviousMonthTotal    decimal.Decimal
	TrendPercentage       float64
	PendingApprovalsCount int
	TotalByCategory       []CategoryTotal
	DateRange             Range
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Summary reports month-over-month approved spending, the pending queue size, and the approved
// breakdown by category for the window [start, end]. Nil bounds default to the current month so far.
func (s *Service) Summary(ctx context.Context, start, end *time.Time) (*Summary, error) {
	now := s.now()
	current := CurrentMonthRange(now)
	previous := PreviousMonthRange(now)

	window := current
	if start != nil {
		window.Start = start.UTC()
	}

	if end != nil {
		window.End = end.UTC()
	}

	currentTotal, err := s.repo.SumApproved(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("summing current month: %w", err)
	}

	previousTotal, err := s.repo.SumApproved(ctx, previous)
	if err != nil {
		return nil, fmt.Errorf("summing previous month: %w", err)
	}

	pending, err := s.repo.CountPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting pending expenses: %w", err)
	}

	totals, err := s.repo.ApprovedByCategory(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("totalling categories: %w", err)
	}

	return &Summary{
		CurrentMonthTotal:     currentTotal,
		PreviousMonthTotal:    previousTotal,
		TrendPercentage:       TrendPercentage(currentTotal, previousTotal),
		PendingApprovalsCount: pending,
		TotalByCategory:       breakdown(totals),
		DateRange:             window,
	}, nil
}

// breakdown fills in each category's share of the grand total and orders the largest first.
func breakdown(totals []CategoryTotal) []CategoryTotal {
	out := make([]CategoryTotal, len(totals))
	copy(out, totals)

	grand := decimal.Zero
	for _, t := range out {
		grand = grand.Add(t.Total)
	}

	for i := range out {
		out[i].Percentage = CategoryPercentage(out[i].Total, grand)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}

		return out[i].CategoryName < out[j].CategoryName
	})

	return out
}
