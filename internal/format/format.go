// Package format turns revenue numbers into display strings.
package format

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/MrJamesThe3rd/revdash/internal/revenue"
)

// Money truncates n toward zero and groups thousands: 12000000 -> "12,000,000".
func Money(n revenue.Number) string {
	v, ok := n.Float64()
	if !ok {
		return n.String()
	}

	return humanize.CommafWithDigits(math.Trunc(v), 0)
}

// Won is Money with the currency unit appended.
func Won(n revenue.Number) string {
	return Money(n) + " 원"
}

// Percent renders one decimal place and a trailing %, prefixing "+" only
// for strictly positive values.
func Percent(n revenue.Number) string {
	v, ok := n.Float64()
	if !ok {
		return n.String() + "%"
	}

	s := fmt.Sprintf("%.1f%%", v)
	if v > 0 {
		return "+" + s
	}

	return s
}
