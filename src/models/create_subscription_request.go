package models

// CreateSubscriptionRequest is the body of POST /api/subscriptions. Field order
// is the wire order; CustomCategory is always sent, even when Category is not "Other".
type CreateSubscriptionRequest struct {
	Name           string  `json:"name" validate:"required,notblank"`
	Amount         float64 `json:"amount" validate:"gt=0"`
	BillingCycle   string  `json:"billing_cycle" validate:"omitempty,oneof=monthly quarterly annual"`
	Category       string  `json:"category"`
	CustomCategory string  `json:"customCategory"`
	StartDate      string  `json:"start_date" validate:"required,isodate"`
}

type CreateSubscriptionResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}
