package expense_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadetan/expense-tracking/internal/expense"
)

func TestDateFilter_Range(t *testing.T) {
	// Thursday.
	now := time.Date(2024, 3, 14, 15, 30, 0, 0, time.UTC)

	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }

	type testCase struct {
		name       string
		filter     expense.DateFilter
		start, end *time.Time
		wantFrom   *time.Time
		wantTo     *time.Time
		wantErr    bool
	}

	tests := []testCase{
		{
			name:     "Today",
			filter:   expense.DateFilterToday,
			wantFrom: new(day(14)),
			wantTo:   new(day(15).Add(-time.Nanosecond)),
		},
		{
			name:     "WeekStartsMonday",
			filter:   expense.DateFilterWeek,
			wantFrom: new(day(11)),
			wantTo:   &now,
		},
		{
			name:     "Month",
			filter:   expense.DateFilterMonth,
			wantFrom: new(day(1)),
			wantTo:   &now,
		},
		{
			name:   "All",
			filter: expense.DateFilterAll,
		},
		{
			name:     "CustomWidensEnd",
			filter:   expense.DateFilterCustom,
			start:    new(day(2)),
			end:      new(day(5)),
			wantFrom: new(day(2)),
			wantTo:   new(day(6).Add(-time.Nanosecond)),
		},
		{
			name:    "CustomInverted",
			filter:  expense.DateFilterCustom,
			start:   new(day(9)),
			end:     new(day(5)),
			wantErr: true,
		},
		{
			name:    "Unknown",
			filter:  expense.DateFilter("fortnight"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := tt.filter.Range(now, tt.start, tt.end)
			if tt.wantErr {
				assert.ErrorIs(t, err, expense.ErrValidation)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
		})
	}
}

func TestListFilter_Offset(t *testing.T) {
	assert.Equal(t, 0, expense.ListFilter{}.Offset())
	assert.Equal(t, 20, expense.ListFilter{Page: 3, Limit: 10}.Offset())
}
