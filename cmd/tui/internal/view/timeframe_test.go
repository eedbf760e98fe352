package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeframeRange(t *testing.T) {
	// Wednesday.
	now := time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		tf        Timeframe
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "today",
			tf:        TimeframeToday,
			wantStart: time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 13, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:      "week starts on monday",
			tf:        TimeframeThisWeek,
			wantStart: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
			wantEnd:   now,
		},
		{
			name:      "this month",
			tf:        TimeframeThisMonth,
			wantStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   now,
		},
		{
			name:      "last month",
			tf:        TimeframeLastMonth,
			wantStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 2, 29, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name: "all time",
			tf:   TimeframeAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := timeframeRange(tt.tf, now)

			assert.True(t, tt.wantStart.Equal(start), "start: got %v want %v", start, tt.wantStart)
			assert.True(t, tt.wantEnd.Equal(end), "end: got %v want %v", end, tt.wantEnd)
		})
	}
}
