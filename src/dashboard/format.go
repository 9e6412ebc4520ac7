package dashboard

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

const currencySymbol = "₹"

// money renders v with two decimals: 649 -> "₹649.00".
func money(v float64) string {
	return currencySymbol + strconv.FormatFloat(v, 'f', 2, 64)
}

// plainMoney renders v in its shortest form: 649 -> "₹649", 15.5 -> "₹15.5".
func plainMoney(v float64) string {
	return currencySymbol + strconv.FormatFloat(v, 'f', -1, 64)
}

// percentOf returns amount as a share of total, rounded to one decimal, and
// its display text. A zero total yields NaN or +Inf rather than an error.
// Ties round away from zero, so 12.25 becomes 12.3.
func percentOf(amount, total float64) (float64, string) {
	pct := amount / total * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return pct, strconv.FormatFloat(pct, 'f', 1, 64)
	}
	d := decimal.NewFromFloat(pct).Round(1)
	return d.InexactFloat64(), d.StringFixed(1)
}

// barFraction clamps a percentage to [0, 1] for drawing a bar.
func barFraction(percent float64) float64 {
	if math.IsNaN(percent) || percent <= 0 {
		return 0
	}
	if percent >= 100 {
		return 1
	}
	return percent / 100
}
