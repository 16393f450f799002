package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatWithPrecision rounds amount half-up to precision decimals and groups the
// integer part in thousands: 1234567.891 at precision 2 gives "1,234,567.89".
func FormatWithPrecision(amount decimal.Decimal, precision int32) string {
	s := amount.StringFixed(precision)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}
