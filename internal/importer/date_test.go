package importer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hadetan/expense-tracking/internal/importer"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in     string
		want   time.Time
		wantOK bool
	}{
		{in: "15-03-2024", want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), wantOK: true},
		{in: "15/03/2024", want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), wantOK: true},
		{in: "  01-12-2023 ", want: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), wantOK: true},
		{in: "1-2-2023", want: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), wantOK: true},
		{in: "29-02-2024", want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), wantOK: true},
		{in: "29-02-2000", want: time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC), wantOK: true},
		{in: "29-02-2023"},
		{in: "29-02-1900"},
		{in: "30-02-2024"},
		{in: "31-04-2024"},
		{in: "31-06-2024"},
		{in: "00-01-2024"},
		{in: "32-01-2024"},
		{in: "10-13-2024"},
		{in: "15-03"},
		{in: "15-03-2024-01"},
		{in: "abc-03-2024"},
		{in: "15-xx-2024"},
		{in: "2024-03-15"},
		{in: "15-03-24"},
		{in: "01-01-0099"},
		{in: "15-03-+024"},
		{in: "15-03-20245"},
		{in: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := importer.ParseDate(tt.in)
			assert.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseDate_RoundTripsEveryDayOfLeapYear(t *testing.T) {
	for d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC); d.Year() == 2024; d = d.AddDate(0, 0, 1) {
		got, ok := importer.ParseDate(d.Format("02-01-2006"))
		if assert.True(t, ok, d.Format(time.DateOnly)) {
			assert.Equal(t, d, got)
		}
	}
}
