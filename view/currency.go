package view

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const notAvailable = "N/A"

// FormatCurrency formats amount as US dollars with precision fraction digits,
// e.g. 1234.5 with precision 2 is "$1,234.50". Halves round away from zero and
// negative amounts put the minus sign before the dollar sign.
func FormatCurrency(amount decimal.Decimal, precision int) string {
	if precision < 0 {
		precision = 0
	}
	rounded := amount.Round(int32(precision))
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	return sign + "$" + formatFixed(rounded, precision)
}

// FormatCurrencyFloat is FormatCurrency for values that are already floats.
func FormatCurrencyFloat(amount float64, precision int) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return notAvailable
	}
	return FormatCurrency(decimal.NewFromFloat(amount), precision)
}

// FormatNumber formats v with digit grouping and exactly precision fraction digits.
func FormatNumber(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return notAvailable
	}
	if precision < 0 {
		precision = 0
	}
	d := decimal.NewFromFloat(v).Round(int32(precision))
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + formatFixed(d, precision)
}

// formatFixed expects a non-negative value that is already rounded to precision.
// The digits come straight from the decimal so large amounts stay exact.
func formatFixed(d decimal.Decimal, precision int) string {
	whole, frac, hasFrac := strings.Cut(d.StringFixed(int32(precision)), ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
