package util

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CycleMonthly   = "monthly"
	CycleQuarterly = "quarterly"
	CycleAnnual    = "annual"

	DateLayout = "2006-01-02"
)

var (
	three  = decimal.NewFromInt(3)
	twelve = decimal.NewFromInt(12)
)

// CycleMonths returns the length of a billing cycle in months. Unknown cycles
// bill monthly.
func CycleMonths(cycle string) int {
	switch cycle {
	case CycleQuarterly:
		return 3
	case CycleAnnual:
		return 12
	default:
		return 1
	}
}

// MonthlyCost normalizes amount to a monthly-equivalent figure.
func MonthlyCost(amount decimal.Decimal, cycle string) decimal.Decimal {
	switch cycle {
	case CycleAnnual:
		return amount.Div(twelve)
	case CycleQuarterly:
		return amount.Div(three)
	default:
		return amount
	}
}

// Round2 rounds half away from zero to two places for the wire.
func Round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// DateOnly drops the clock and zone, keeping the calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddMonths adds n calendar months, clamping the day to the end of the target
// month (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}

// NextRenewal returns the first renewal strictly after today. A start date in
// the future is its own first renewal. Each step is taken from start so month-end
// clamping does not drift.
func NextRenewal(start time.Time, cycle string, today time.Time) time.Time {
	start = DateOnly(start)
	today = DateOnly(today)
	if start.After(today) {
		return start
	}

	step := CycleMonths(cycle)
	elapsed := (today.Year()-start.Year())*12 + int(today.Month()-start.Month())
	k := elapsed / step
	if k < 1 {
		k = 1
	}
	for {
		renewal := AddMonths(start, k*step)
		if renewal.After(today) {
			return renewal
		}
		k++
	}
}

// DaysUntil counts whole calendar days from today to date.
func DaysUntil(date, today time.Time) int {
	return int(DateOnly(date).Sub(DateOnly(today)).Hours() / 24)
}
