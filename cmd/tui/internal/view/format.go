package view

import (
	"math"
	"strings"
)

const (
	barFull  = "█"
	barEmpty = "·"
)

// Bar draws v as a horizontal bar of at most width cells, scaled to limit.
func Bar(v, limit float64, width int) string {
	if width <= 0 {
		return ""
	}

	n := 0
	if limit > 0 && !math.IsNaN(v) && v > 0 {
		n = int(math.Round(math.Min(v, limit) / limit * float64(width)))
	}

	return strings.Repeat(barFull, n) + strings.Repeat(barEmpty, width-n)
}

// DivergingBar draws v around a center line: declines grow left, growth
// grows right. Each side is half cells wide.
func DivergingBar(v, limit float64, half int) string {
	left := strings.Repeat(" ", half)
	right := strings.Repeat(" ", half)

	switch {
	case math.IsNaN(v) || limit <= 0:
	case v < 0:
		n := int(math.Round(math.Min(-v, limit) / limit * float64(half)))
		left = strings.Repeat(" ", half-n) + strings.Repeat(barFull, n)
	case v > 0:
		n := int(math.Round(math.Min(v, limit) / limit * float64(half)))
		right = strings.Repeat(barFull, n) + strings.Repeat(" ", half-n)
	}

	return left + "│" + right
}
