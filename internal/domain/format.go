package domain

import (
	"fmt"
	"math"
	"strings"
)

// FormatAmount renders amount with two decimals and thousands separators,
// prefixed by the currency code. Rounding only happens here.
func FormatAmount(amount float64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	cents := int64(math.Round(amount * 100))
	whole := cents / 100
	frac := cents % 100

	if sign == "-" && cents == 0 {
		sign = ""
	}

	return fmt.Sprintf("%s%s %s.%02d", sign, normalizeCurrency(currency), groupThousands(whole), frac)
}

func groupThousands(v int64) string {
	digits := fmt.Sprintf("%d", v)
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}

// CompactAmount renders large totals as 1.2k / 3.4M.
func CompactAmount(v float64) string {
	abs := math.Abs(v)
	if abs < 1_000 {
		return fmt.Sprintf("%.2f", v)
	}

	if abs < 1_000_000 {
		return fmt.Sprintf("%.1fk", v/1_000)
	}

	return fmt.Sprintf("%.1fM", v/1_000_000)
}
