package dashboard

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/MrJamesThe3rd/revdash/internal/format"
	"github.com/MrJamesThe3rd/revdash/internal/revenue"
)

// HeatCell is one month of the YoY heatmap row.
type HeatCell struct {
	Period string
	Label  string
	Color  string
}

// Heatmap colors each month's YoY change on a diverging scale centered at
// zero: Negative at the largest decline, Midpoint at zero and Positive at
// the largest growth. Unparseable values get the Neutral color.
func Heatmap(t *revenue.Table, p Palette) []HeatCell {
	neg, _ := colorful.Hex(p.Negative)
	mid, _ := colorful.Hex(p.Midpoint)
	pos, _ := colorful.Hex(p.Positive)

	bound := 0.0
	for _, r := range t.Records {
		if v, ok := r.YoYChangePct.Float64(); ok {
			bound = math.Max(bound, math.Abs(v))
		}
	}

	cells := make([]HeatCell, t.Len())
	for i, r := range t.Records {
		cells[i] = HeatCell{
			Period: r.Period,
			Label:  format.Percent(r.YoYChangePct),
			Color:  p.Neutral,
		}

		v, ok := r.YoYChangePct.Float64()
		if !ok {
			continue
		}

		var c colorful.Color

		switch {
		case bound == 0:
			c = mid
		case v < 0:
			c = mid.BlendLab(neg, -v/bound)
		default:
			c = mid.BlendLab(pos, v/bound)
		}

		cells[i].Color = c.Clamped().Hex()
	}

	return cells
}

// TextColor picks a dark or light label color for legible text on bg.
func TextColor(bg string) string {
	c, err := colorful.Hex(bg)
	if err != nil {
		return "#ffffff"
	}

	if l, _, _ := c.Lab(); l > 0.6 {
		return "#111111"
	}

	return "#ffffff"
}
