package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatCurrency formats an amount with thousands separators and two decimals,
// e.g. 15000.5 -> "15,000.50". Negative amounts keep their sign.
func FormatCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cents := int64(math.Round(amount * 100))
	integerPart := fmt.Sprintf("%d", cents/100)

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	return fmt.Sprintf("%s%s.%02d", sign, strings.Join(groups, ","), cents%100)
}
