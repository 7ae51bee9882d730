package dashboard

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/MrJamesThe3rd/revdash/internal/revenue"
)

func testCharts() *charts {
	cfg := DefaultConfig()
	return &charts{width: cfg.ChartWidth, height: cfg.ChartHeight, palette: cfg.Palette}
}

func invalidTable() *revenue.Table {
	return &revenue.Table{Records: []revenue.Record{
		{
			Period:            "2024-01",
			Revenue:           revenue.Invalid(),
			PriorYearRevenue:  revenue.Invalid(),
			YoYChangePct:      revenue.Invalid(),
			CumulativeRevenue: revenue.Invalid(),
			Month:             1,
		},
	}}
}

func TestCharts_NoData(t *testing.T) {
	c := testCharts()
	tbl := invalidTable()

	sum, err := revenue.Summarize(tbl)
	require.NoError(t, err)

	_, err = c.Comparison(tbl)
	assert.ErrorIs(t, err, errNoData)

	_, err = c.Extremes(tbl, sum)
	assert.ErrorIs(t, err, errNoData)

	_, err = c.Cumulative(tbl)
	assert.ErrorIs(t, err, errNoData)

	_, err = c.ChangeBars(&revenue.Table{})
	assert.ErrorIs(t, err, errNoData)

	// Bars still render with the invalid value drawn as a neutral zero bar.
	svg, err := c.ChangeBars(tbl)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}

func TestCharts_SingleRow(t *testing.T) {
	c := testCharts()
	tbl := &revenue.Table{Records: []revenue.Record{{
		Period:            "2024-01",
		Revenue:           revenue.Valid(100),
		PriorYearRevenue:  revenue.Valid(100),
		YoYChangePct:      revenue.Valid(0),
		CumulativeRevenue: revenue.Valid(100),
		Month:             1,
	}}}

	sum, err := revenue.Summarize(tbl)
	require.NoError(t, err)

	for name, draw := range map[string]func() (string, error){
		"comparison": func() (string, error) { s, err := c.Comparison(tbl); return string(s), err },
		"bars":       func() (string, error) { s, err := c.ChangeBars(tbl); return string(s), err },
		"extremes":   func() (string, error) { s, err := c.Extremes(tbl, sum); return string(s), err },
		"cumulative": func() (string, error) { s, err := c.Cumulative(tbl); return string(s), err },
	} {
		t.Run(name, func(t *testing.T) {
			svg, err := draw()
			require.NoError(t, err)
			assert.Contains(t, svg, "<svg")
		})
	}
}

func TestValueRange(t *testing.T) {
	tests := []struct {
		name        string
		includeZero bool
		values      [][]float64
		wantMin     float64
		wantMax     float64
	}{
		{
			name:    "Padded",
			values:  [][]float64{{100, 200}},
			wantMin: 92,
			wantMax: 208,
		},
		{
			name:        "Pinned To Zero",
			includeZero: true,
			values:      [][]float64{{100, 200}},
			wantMin:     0,
			wantMax:     216,
		},
		{
			name:        "Negative Kept",
			includeZero: true,
			values:      [][]float64{{-50}, {50}},
			wantMin:     -58,
			wantMax:     58,
		},
		{
			name:    "Flat",
			values:  [][]float64{{100}},
			wantMin: 90,
			wantMax: 110,
		},
		{
			name:    "Empty",
			wantMin: 0,
			wantMax: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valueRange(tt.includeZero, tt.values...)
			assert.InDelta(t, tt.wantMin, r.Min, 1e-9)
			assert.InDelta(t, tt.wantMax, r.Max, 1e-9)
		})
	}
}

func TestHexColor(t *testing.T) {
	c := hexColor("#ff6b6b")
	assert.Equal(t, uint8(0xff), c.R)
	assert.Equal(t, uint8(0x6b), c.G)
	assert.Equal(t, uint8(0x6b), c.B)
}

func TestZeroY(t *testing.T) {
	canvas := chart.Box{Top: 0, Left: 10, Right: 90, Bottom: 100}

	tests := []struct {
		name string
		yr   chart.ContinuousRange
		want int
	}{
		{name: "Centered", yr: chart.ContinuousRange{Min: -10, Max: 10}, want: 50},
		{name: "All Positive", yr: chart.ContinuousRange{Min: 0, Max: 10}, want: 100},
		{name: "All Negative", yr: chart.ContinuousRange{Min: -10, Max: 0}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, zeroY(tt.yr, canvas))
		})
	}
}

func TestZeroLine(t *testing.T) {
	r, err := chart.SVG(100, 100)
	require.NoError(t, err)

	line := zeroLine(chart.ContinuousRange{Min: -10, Max: 10}, hexColor("#9e9e9e"))
	line(r, chart.Box{Top: 0, Left: 10, Right: 90, Bottom: 100}, chart.Style{})

	var buf bytes.Buffer
	require.NoError(t, r.Save(&buf))

	assert.Contains(t, buf.String(), "d=\"M 10 50\nL 90 50\"")
}

func TestCharts_ChangeBarsMixedSigns(t *testing.T) {
	tbl := &revenue.Table{Records: []revenue.Record{
		{Period: "2024-01", YoYChangePct: revenue.Valid(-12.5)},
		{Period: "2024-02", YoYChangePct: revenue.Valid(20)},
	}}

	svg, err := testCharts().ChangeBars(tbl)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}
