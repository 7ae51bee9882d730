package dashboard

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Layout controls the page width.
type Layout string

const (
	LayoutWide     Layout = "wide"
	LayoutCentered Layout = "centered"
)

// Palette holds hex colors used by charts and the heatmap.
type Palette struct {
	Positive string
	Negative string
	Midpoint string
	Revenue  string
	Prior    string
	Neutral  string
}

// Config is handed to NewRenderer once at startup.
type Config struct {
	PageTitle   string
	Layout      Layout
	ChartWidth  int
	ChartHeight int
	Palette     Palette
}

func DefaultConfig() Config {
	return Config{
		PageTitle:   "월별 매출 대시보드",
		Layout:      LayoutWide,
		ChartWidth:  560,
		ChartHeight: 320,
		Palette: Palette{
			Positive: "#7bd389",
			Negative: "#ff6b6b",
			Midpoint: "#2a375a",
			Revenue:  "#1f77b4",
			Prior:    "#ff7f0e",
			Neutral:  "#888888",
		},
	}
}

func (c Config) validate() error {
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", c.ChartWidth, c.ChartHeight)
	}

	if c.Layout != LayoutWide && c.Layout != LayoutCentered {
		return fmt.Errorf("unknown layout %q", c.Layout)
	}

	p := c.Palette
	for _, hex := range []string{p.Positive, p.Negative, p.Midpoint, p.Revenue, p.Prior, p.Neutral} {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("palette color %q: %w", hex, err)
		}
	}

	return nil
}
