package dashboard

import (
	"math"
	"strconv"
	"strings"

	"subtrack/src/models"
)

const (
	DefaultBillingCycle = "monthly"
	DefaultCategory     = "Entertainment"
	OtherCategory       = "Other"
)

// BillingCycles and Categories are the choices offered by the add form.
var (
	BillingCycles = []string{"monthly", "quarterly", "annual"}
	Categories    = []string{"Entertainment", "Music", "Shopping", "Productivity", "Cloud", "Health", "Education", "News", OtherCategory}
)

// Form is the add-subscription form. Fields hold raw user input.
type Form struct {
	Visible               bool
	Name                  string
	Amount                string
	BillingCycle          string
	Category              string
	CustomCategory        string
	CustomCategoryVisible bool
	StartDate             string
}

func newForm() Form {
	return Form{BillingCycle: DefaultBillingCycle, Category: DefaultCategory}
}

// ValidationError is a user-facing problem with the form. No request is
// sent when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// request checks the form in order: required fields, then a positive
// amount, then the custom category.
func (f Form) request() (models.CreateSubscriptionRequest, error) {
	if f.Name == "" || f.Amount == "" || f.StartDate == "" {
		return models.CreateSubscriptionRequest{}, &ValidationError{Message: "Please fill all required fields"}
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(f.Amount), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return models.CreateSubscriptionRequest{}, &ValidationError{Message: "Amount must be greater than 0"}
	}

	if f.Category == OtherCategory && strings.TrimSpace(f.CustomCategory) == "" {
		return models.CreateSubscriptionRequest{}, &ValidationError{Message: "Please specify the category"}
	}

	return models.CreateSubscriptionRequest{
		Name:           f.Name,
		Amount:         amount,
		BillingCycle:   f.BillingCycle,
		Category:       f.Category,
		CustomCategory: f.CustomCategory,
		StartDate:      f.StartDate,
	}, nil
}
