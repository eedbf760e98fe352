package analytics

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TrendPercentage is the change from previous to current in percent. A rise from zero counts as
// 100%, and no activity in either period as 0%.
func TrendPercentage(current, previous decimal.Decimal) float64 {
	switch {
	case previous.IsPositive():
		return round2(current.Sub(previous).Div(previous).Mul(hundred).InexactFloat64())
	case current.IsPositive():
		return 100
	}

	return 0
}

// CategoryPercentage is categoryTotal's share of grandTotal in percent, or 0 without a total.
func CategoryPercentage(categoryTotal, grandTotal decimal.Decimal) float64 {
	if !grandTotal.IsPositive() {
		return 0
	}

	return round2(categoryTotal.Div(grandTotal).Mul(hundred).InexactFloat64())
}

// round2 rounds half-up to two decimals, so -0.125 becomes -0.12.
func round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}

// Range is an inclusive time window.
type Range struct {
	Start time.Time
	End   time.Time
}

// CurrentMonthRange runs from the first day of now's month up to now.
func CurrentMonthRange(now time.Time) Range {
	now = now.UTC()

	return Range{
		Start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		End:   now,
	}
}

// PreviousMonthRange covers the whole calendar month before now's, ending at 23:59:59 of its
// last day.
func PreviousMonthRange(now time.Time) Range {
	now = now.UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	return Range{
		Start: firstOfMonth.AddDate(0, -1, 0),
		End:   firstOfMonth.Add(-time.Second),
	}
}
