package models

// RenewalEntry is a subscription renewing inside the renewal horizon.
type RenewalEntry struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	BillingCycle string  `json:"billing_cycle"`
	Category     string  `json:"category"`
	RenewalDate  string  `json:"renewal_date"`
	DaysUntil    int     `json:"days_until"`
}
