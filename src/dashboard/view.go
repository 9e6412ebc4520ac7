package dashboard

import (
	"strconv"

	"subtrack/src/models"
	"subtrack/src/util"
)

// RenewalsPlaceholder is shown instead of the renewals list when it is empty.
const RenewalsPlaceholder = "No renewals in the next 90 days"

// urgentDays marks renewals close enough to highlight.
const urgentDays = 7

// View is a snapshot of everything the dashboard renders. Each group of
// fields is one region and is replaced whole by its load.
type View struct {
	// metrics region
	MonthlyCost        string
	AnnualCost         string
	TotalSubscriptions string
	CategoryTotal      string
	Categories         []CategoryRow
	MetricsLoaded      bool

	// subscriptions region
	Subscriptions       []SubscriptionRow
	SubscriptionsLoaded bool

	// renewals region
	Renewals            []RenewalRow
	RenewalsPlaceholder string
	RenewalsLoaded      bool

	Form Form
}

type CategoryRow struct {
	Name        string
	Amount      string
	Percent     float64
	PercentText string
	// Bar is the filled share of the category's bar, in [0, 1].
	Bar float64
}

type SubscriptionRow struct {
	ID           int64
	Name         string
	Amount       string
	BillingCycle string
	Category     string
	StartDate    string
	RenewalDate  string
	MonthlyCost  string
}

type RenewalRow struct {
	Name        string
	RenewalDate string
	Amount      string
	DaysUntil   int
	DaysText    string
	Urgent      bool
}

func (v View) clone() View {
	out := v
	out.Categories = append([]CategoryRow(nil), v.Categories...)
	out.Subscriptions = append([]SubscriptionRow(nil), v.Subscriptions...)
	out.Renewals = append([]RenewalRow(nil), v.Renewals...)
	return out
}

func (v *View) setMetrics(m *models.MetricsSummary) {
	v.MonthlyCost = money(m.TotalMonthly)
	v.AnnualCost = money(m.TotalAnnual)
	v.TotalSubscriptions = strconv.Itoa(m.TotalSubscriptions)
	v.CategoryTotal = money(m.TotalMonthly)

	rows := make([]CategoryRow, 0, len(m.Categories))
	for _, c := range m.Categories {
		pct, text := percentOf(c.Amount, m.TotalMonthly)
		rows = append(rows, CategoryRow{
			Name:        c.Name,
			Amount:      money(c.Amount),
			Percent:     pct,
			PercentText: text,
			Bar:         barFraction(pct),
		})
	}
	v.Categories = rows
	v.MetricsLoaded = true
}

func (v *View) setSubscriptions(subs []models.Subscription) {
	rows := make([]SubscriptionRow, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, SubscriptionRow{
			ID:           s.ID,
			Name:         s.Name,
			Amount:       plainMoney(s.Amount),
			BillingCycle: util.Capitalize(s.BillingCycle),
			Category:     s.Category,
			StartDate:    s.StartDate,
			RenewalDate:  s.RenewalDate,
			MonthlyCost:  money(s.MonthlyCost),
		})
	}
	v.Subscriptions = rows
	v.SubscriptionsLoaded = true
}

func (v *View) setRenewals(renewals []models.RenewalEntry) {
	v.RenewalsLoaded = true
	if len(renewals) == 0 {
		v.Renewals = nil
		v.RenewalsPlaceholder = RenewalsPlaceholder
		return
	}
	rows := make([]RenewalRow, 0, len(renewals))
	for _, r := range renewals {
		rows = append(rows, RenewalRow{
			Name:        r.Name,
			RenewalDate: r.RenewalDate,
			Amount:      plainMoney(r.Amount),
			DaysUntil:   r.DaysUntil,
			DaysText:    strconv.Itoa(r.DaysUntil) + " days",
			Urgent:      r.DaysUntil <= urgentDays,
		})
	}
	v.Renewals = rows
	v.RenewalsPlaceholder = ""
}
