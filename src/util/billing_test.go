package util

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestMonthlyCost(t *testing.T) {
	cases := []struct {
		amount string
		cycle  string
		want   float64
	}{
		{"649", CycleMonthly, 649},
		{"1499", CycleAnnual, 124.92},
		{"300", CycleQuarterly, 100},
		{"99.99", "weekly", 99.99},
	}

	for _, tc := range cases {
		got := Round2(MonthlyCost(decimal.RequireFromString(tc.amount), tc.cycle))
		if got != tc.want {
			t.Fatalf("MonthlyCost(%s, %s) = %v, want %v", tc.amount, tc.cycle, got, tc.want)
		}
	}
}

func TestAddMonthsClampsToMonthEnd(t *testing.T) {
	cases := []struct {
		start string
		n     int
		want  string
	}{
		{"2024-01-31", 1, "2024-02-29"},
		{"2023-01-31", 1, "2023-02-28"},
		{"2024-01-31", 3, "2024-04-30"},
		{"2024-02-29", 12, "2025-02-28"},
		{"2024-11-15", 3, "2025-02-15"},
	}

	for _, tc := range cases {
		if got := AddMonths(date(tc.start), tc.n).Format(DateLayout); got != tc.want {
			t.Fatalf("AddMonths(%s, %d) = %s, want %s", tc.start, tc.n, got, tc.want)
		}
	}
}

func TestNextRenewal(t *testing.T) {
	today := date("2024-03-10")

	cases := []struct {
		start string
		cycle string
		want  string
	}{
		{"2024-01-15", CycleMonthly, "2024-03-15"},
		{"2024-01-10", CycleMonthly, "2024-04-10"}, // renewing today rolls forward
		{"2024-01-31", CycleMonthly, "2024-03-31"},
		{"2023-12-01", CycleQuarterly, "2024-06-01"},
		{"2020-05-20", CycleAnnual, "2024-05-20"},
		{"2024-04-01", CycleAnnual, "2024-04-01"}, // future start
		{"2024-03-01", "unknown", "2024-04-01"},
	}

	for _, tc := range cases {
		got := NextRenewal(date(tc.start), tc.cycle, today).Format(DateLayout)
		if got != tc.want {
			t.Fatalf("NextRenewal(%s, %s) = %s, want %s", tc.start, tc.cycle, got, tc.want)
		}
	}
}

func TestDaysUntilIgnoresClock(t *testing.T) {
	today := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)
	if got := DaysUntil(date("2024-03-11"), today); got != 1 {
		t.Fatalf("DaysUntil = %d, want 1", got)
	}
	if got := DaysUntil(date("2024-06-08"), today); got != 90 {
		t.Fatalf("DaysUntil = %d, want 90", got)
	}
}
