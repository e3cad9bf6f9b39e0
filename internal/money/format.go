// Package money rounds and formats currency amounts for display.
// Projection values are only ever rounded here, never inside the engine.
package money

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Whole rounds x half away from zero to whole currency units. x must be finite.
func Whole(x float64) decimal.Decimal {
	return decimal.NewFromFloat(x).Round(0)
}

// Format renders x as whole US dollars with thousands separators, e.g. "$1,234,567".
// Non-finite values render as "n/a".
func Format(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "n/a"
	}
	d := Whole(x)
	neg := d.IsNegative()
	digits := d.Abs().StringFixed(0)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
