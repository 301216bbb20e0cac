package reservation

import "fmt"

// TotalPrice computes the amount due for a booking. A qualifying free code
// zeroes the total regardless of quantity; partial discounts leave the total
// untouched.
func TotalPrice(price float64, quantity int, free bool) float64 {
	if free {
		return 0
	}
	return price * float64(quantity)
}

// FormatAmount renders a price with two decimals, the way totals appear in
// notifications and exports.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
