package models

// Subscription is a stored subscription with the derived fields the API reports.
// RenewalDate and MonthlyCost are computed at read time from StartDate, Amount
// and BillingCycle.
type Subscription struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	BillingCycle string  `json:"billing_cycle"`
	Category     string  `json:"category"`
	StartDate    string  `json:"start_date"`
	RenewalDate  string  `json:"renewal_date"`
	MonthlyCost  float64 `json:"monthly_cost"`
}
