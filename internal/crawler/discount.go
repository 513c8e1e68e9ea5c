package crawler

import (
	"math"
	"strconv"
)

// FormatDiscount derives a percentage-off string from two prices.
// It returns "" when either price is missing or when there is no
// genuine discount (original <= current). Rounding is half away from
// zero; exact .5 boundaries are not load-bearing for discounts.
func FormatDiscount(original, current float64) string {
	if original <= 0 || current <= 0 || original <= current {
		return ""
	}

	pct := math.Round((original - current) / original * 100)
	return strconv.Itoa(int(pct)) + "%"
}
