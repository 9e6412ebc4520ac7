package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"subtrack/src/models"
	"subtrack/src/util"

	"github.com/shopspring/decimal"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

// NewSubscription is a validated subscription ready to insert.
type NewSubscription struct {
	Name         string
	Amount       decimal.Decimal
	BillingCycle string
	Category     string
	StartDate    time.Time
}

// subscriptionRow is a stored row before derived fields are computed.
type subscriptionRow struct {
	ID           int64
	Name         string
	Amount       decimal.Decimal
	BillingCycle string
	Category     string
	StartDate    time.Time
}

func (r subscriptionRow) monthlyCost() decimal.Decimal {
	return util.MonthlyCost(r.Amount, r.BillingCycle)
}

func (r subscriptionRow) nextRenewal(today time.Time) time.Time {
	return util.NextRenewal(r.StartDate, r.BillingCycle, today)
}

func CreateSubscription(ctx context.Context, pool Querier, sub NewSubscription) (int64, error) {
	query := `
		INSERT INTO subscriptions (name, amount, billing_cycle, category, start_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err := pool.QueryRow(ctx, query, sub.Name, sub.Amount, sub.BillingCycle, sub.Category, sub.StartDate).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetAllSubscriptions returns every subscription ordered by name, with
// monthly cost and next renewal computed against today.
func GetAllSubscriptions(ctx context.Context, pool Querier, today time.Time) ([]models.Subscription, error) {
	rows, err := listSubscriptionRows(ctx, pool)
	if err != nil {
		return nil, err
	}

	subs := make([]models.Subscription, 0, len(rows))
	for _, r := range rows {
		subs = append(subs, models.Subscription{
			ID:           r.ID,
			Name:         r.Name,
			Amount:       r.Amount.InexactFloat64(),
			BillingCycle: r.BillingCycle,
			Category:     r.Category,
			StartDate:    r.StartDate.Format(util.DateLayout),
			RenewalDate:  r.nextRenewal(today).Format(util.DateLayout),
			MonthlyCost:  r.monthlyCost().InexactFloat64(),
		})
	}
	return subs, nil
}

func DeleteSubscription(ctx context.Context, pool Querier, id int64) error {
	query := `DELETE FROM subscriptions WHERE id = $1`
	cmd, err := pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func listSubscriptionRows(ctx context.Context, pool Querier) ([]subscriptionRow, error) {
	query := `
		SELECT id, name, amount::text, billing_cycle, category, start_date
		FROM subscriptions
		ORDER BY name, id
	`
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []subscriptionRow
	for rows.Next() {
		var (
			r      subscriptionRow
			amount string
		)
		if err := rows.Scan(&r.ID, &r.Name, &amount, &r.BillingCycle, &r.Category, &r.StartDate); err != nil {
			return nil, err
		}
		r.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("subscription %d: bad amount %q: %w", r.ID, amount, err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
