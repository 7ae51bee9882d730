package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/MrJamesThe3rd/revdash/internal/format"
	"github.com/MrJamesThe3rd/revdash/internal/revenue"
)

// errNoData is returned when a chart has no valid point to draw.
var errNoData = errors.New("no data to plot")

const (
	dotWidth       = 3
	highlightWidth = 7
)

type charts struct {
	width, height int
	palette       Palette
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// series extracts the valid values of one column, keyed by row index.
func series(t *revenue.Table, get func(revenue.Record) revenue.Number) (xs, ys []float64) {
	for i, r := range t.Records {
		if v, ok := get(r).Float64(); ok {
			xs = append(xs, float64(i))
			ys = append(ys, v)
		}
	}

	return xs, ys
}

func periodAxis(t *revenue.Table) chart.XAxis {
	ticks := make([]chart.Tick, t.Len())
	for i, p := range t.Periods() {
		ticks[i] = chart.Tick{Value: float64(i), Label: p}
	}

	return chart.XAxis{
		Ticks: ticks,
		Range: &chart.ContinuousRange{Min: -0.5, Max: float64(t.Len()) - 0.5},
	}
}

// valueRange spans every value with some headroom. includeZero pins the
// range to zero so areas and bars start there.
func valueRange(includeZero bool, values ...[]float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)

	for _, vs := range values {
		for _, v := range vs {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}

	if includeZero {
		lo = math.Min(lo, 0)
		hi = math.Max(hi, 0)
	}

	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}

	pad := (hi - lo) * 0.08
	if pad == 0 {
		pad = math.Max(1, math.Abs(hi)*0.1)
	}

	r := &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
	if includeZero && lo == 0 {
		r.Min = 0
	}

	return r
}

func moneyTick(v any) string {
	if f, ok := v.(float64); ok {
		return format.Money(revenue.Valid(f))
	}

	return ""
}

func percentTick(v any) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f%%", f)
	}

	return ""
}

func (c *charts) base(t *revenue.Table, yr *chart.ContinuousRange, series ...chart.Series) chart.Chart {
	return chart.Chart{
		Width:      c.width,
		Height:     c.height,
		Background: chart.Style{Padding: chart.Box{Top: 16, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      periodAxis(t),
		YAxis:      chart.YAxis{Range: yr, ValueFormatter: moneyTick},
		Series:     series,
	}
}

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// render draws r as inline SVG.
func render(r renderable) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.Render(chart.SVG, &buf); err != nil {
		return "", err
	}

	return template.HTML(buf.String()), nil
}

// Comparison draws revenue and prior-year revenue as two lines, the prior
// year dashed.
func (c *charts) Comparison(t *revenue.Table) (template.HTML, error) {
	rx, ry := series(t, func(r revenue.Record) revenue.Number { return r.Revenue })
	px, py := series(t, func(r revenue.Record) revenue.Number { return r.PriorYearRevenue })

	var list []chart.Series

	if len(rx) > 0 {
		list = append(list, chart.ContinuousSeries{
			Name:    revenue.ColRevenue,
			XValues: rx,
			YValues: ry,
			Style:   c.lineStyle(c.palette.Revenue),
		})
	}

	if len(px) > 0 {
		st := c.lineStyle(c.palette.Prior)
		st.StrokeDashArray = []float64{6, 4}

		list = append(list, chart.ContinuousSeries{
			Name:    revenue.ColPriorYear,
			XValues: px,
			YValues: py,
			Style:   st,
		})
	}

	if len(list) == 0 {
		return "", errNoData
	}

	ch := c.base(t, valueRange(false, ry, py), list...)
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return render(ch)
}

// ChangeBars draws the YoY percentage as bars from a zero base, colored by
// sign. Unparseable values are drawn as empty neutral bars.
func (c *charts) ChangeBars(t *revenue.Table) (template.HTML, error) {
	if t.Len() == 0 {
		return "", errNoData
	}

	bars := make([]chart.Value, t.Len())
	values := make([]float64, 0, t.Len())

	for i, r := range t.Records {
		v, ok := r.YoYChangePct.Float64()

		color := c.palette.Neutral

		switch {
		case !ok:
			v = 0
		case v < 0:
			color = c.palette.Negative
		default:
			color = c.palette.Positive
		}

		values = append(values, v)
		bars[i] = chart.Value{
			Value: v,
			Label: r.Period,
			Style: chart.Style{FillColor: hexColor(color), StrokeColor: hexColor(color)},
		}
	}

	barWidth := max(8, (c.width-120)/(2*t.Len()))
	yr := valueRange(true, values)

	bc := chart.BarChart{
		Width:        c.width,
		Height:       c.height,
		Background:   chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		BarWidth:     barWidth,
		BarSpacing:   barWidth / 2,
		UseBaseValue: true,
		BaseValue:    0,
		YAxis:        chart.YAxis{Range: yr, ValueFormatter: percentTick},
		Bars:         bars,
		Elements:     []chart.Renderable{zeroLine(*yr, hexColor(c.palette.Neutral))},
	}

	return render(bc)
}

// zeroY is the canvas row of the value 0 on yr.
func zeroY(yr chart.ContinuousRange, canvas chart.Box) int {
	yr.Domain = canvas.Height()
	return canvas.Bottom - yr.Translate(0)
}

// zeroLine strokes a horizontal rule across the plot at 0.
func zeroLine(yr chart.ContinuousRange, color drawing.Color) chart.Renderable {
	return func(r chart.Renderer, canvas chart.Box, _ chart.Style) {
		y := zeroY(yr, canvas)

		r.SetStrokeColor(color)
		r.SetStrokeWidth(1)
		r.MoveTo(canvas.Left, y)
		r.LineTo(canvas.Right, y)
		r.Stroke()
	}
}

// Extremes draws the revenue line with the maximum and minimum months
// emphasized.
func (c *charts) Extremes(t *revenue.Table, s *revenue.Summary) (template.HTML, error) {
	xs, ys := series(t, func(r revenue.Record) revenue.Number { return r.Revenue })
	if len(xs) == 0 {
		return "", errNoData
	}

	list := []chart.Series{chart.ContinuousSeries{
		Name:    revenue.ColRevenue,
		XValues: xs,
		YValues: ys,
		Style:   c.lineStyle(c.palette.Revenue),
	}}

	if r, ok := s.MaxRecord(t); ok {
		list = append(list, c.highlight("최고", s.MaxIndex, r.Revenue, c.palette.Positive))
	}

	if r, ok := s.MinRecord(t); ok {
		list = append(list, c.highlight("최저", s.MinIndex, r.Revenue, c.palette.Negative))
	}

	return render(c.base(t, valueRange(false, ys), list...))
}

// Cumulative draws the running total as a filled area down to zero.
func (c *charts) Cumulative(t *revenue.Table) (template.HTML, error) {
	xs, ys := series(t, func(r revenue.Record) revenue.Number { return r.CumulativeRevenue })
	if len(xs) == 0 {
		return "", errNoData
	}

	st := c.lineStyle(c.palette.Revenue)
	st.FillColor = hexColor(c.palette.Revenue).WithAlpha(64)

	return render(c.base(t, valueRange(true, ys), chart.ContinuousSeries{
		Name:    revenue.ColCumulative,
		XValues: xs,
		YValues: ys,
		Style:   st,
	}))
}

func (c *charts) lineStyle(hex string) chart.Style {
	return chart.Style{
		StrokeColor: hexColor(hex),
		StrokeWidth: 2,
		DotColor:    hexColor(hex),
		DotWidth:    dotWidth,
	}
}

func (c *charts) highlight(name string, idx int, n revenue.Number, hex string) chart.Series {
	v, _ := n.Float64()

	return chart.ContinuousSeries{
		Name:    name,
		XValues: []float64{float64(idx)},
		YValues: []float64{v},
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotColor:    hexColor(hex),
			DotWidth:    highlightWidth,
		},
	}
}
