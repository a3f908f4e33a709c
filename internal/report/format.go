package report

import "fmt"

// FormatCurrency renders an amount with a magnitude suffix: "$4.00B",
// "$2.50M", "$1.50K", or "$999.00" below a thousand. Tier bounds are
// inclusive.
func FormatCurrency(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("$%.2fK", v/1e3)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}
