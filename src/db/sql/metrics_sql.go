package db

import (
	"context"
	"sort"
	"time"

	"subtrack/src/models"
	"subtrack/src/util"

	"github.com/shopspring/decimal"
)

// GetMetrics totals monthly-equivalent spend overall and per category.
// Categories are ordered by monthly cost, highest first.
func GetMetrics(ctx context.Context, pool Querier) (*models.MetricsSummary, error) {
	rows, err := listSubscriptionRows(ctx, pool)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	byCategory := map[string]decimal.Decimal{}
	for _, r := range rows {
		cost := r.monthlyCost()
		total = total.Add(cost)
		byCategory[r.Category] = byCategory[r.Category].Add(cost)
	}

	type categoryTotal struct {
		name  string
		total decimal.Decimal
	}
	totals := make([]categoryTotal, 0, len(byCategory))
	for name, sum := range byCategory {
		totals = append(totals, categoryTotal{name: name, total: sum})
	}
	sort.Slice(totals, func(i, j int) bool {
		if c := totals[i].total.Cmp(totals[j].total); c != 0 {
			return c > 0
		}
		return totals[i].name < totals[j].name
	})

	categories := make(models.CategoryBreakdown, 0, len(totals))
	for _, ct := range totals {
		categories = append(categories, models.CategoryAmount{Name: ct.name, Amount: util.Round2(ct.total)})
	}

	return &models.MetricsSummary{
		TotalMonthly:       util.Round2(total),
		TotalAnnual:        util.Round2(total.Mul(decimal.NewFromInt(12))),
		TotalSubscriptions: len(rows),
		Categories:         categories,
	}, nil
}

// GetUpcomingRenewals returns subscriptions whose next renewal is at most
// horizonDays away, soonest first.
func GetUpcomingRenewals(ctx context.Context, pool Querier, today time.Time, horizonDays int) ([]models.RenewalEntry, error) {
	rows, err := listSubscriptionRows(ctx, pool)
	if err != nil {
		return nil, err
	}

	type upcoming struct {
		row     subscriptionRow
		renewal time.Time
		days    int
	}
	var due []upcoming
	for _, r := range rows {
		renewal := r.nextRenewal(today)
		days := util.DaysUntil(renewal, today)
		if days < 0 || days > horizonDays {
			continue
		}
		due = append(due, upcoming{row: r, renewal: renewal, days: days})
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].renewal.Before(due[j].renewal)
	})

	renewals := make([]models.RenewalEntry, 0, len(due))
	for _, u := range due {
		renewals = append(renewals, models.RenewalEntry{
			ID:           u.row.ID,
			Name:         u.row.Name,
			Amount:       u.row.Amount.InexactFloat64(),
			BillingCycle: u.row.BillingCycle,
			Category:     u.row.Category,
			RenewalDate:  u.renewal.Format(util.DateLayout),
			DaysUntil:    u.days,
		})
	}
	return renewals, nil
}
