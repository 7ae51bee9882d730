package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/revdash/internal/dashboard"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"revdash"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		MaxUploadBytes int64         `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
		CORSOrigins    []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}

	Dashboard struct {
		Title       string `envconfig:"DASHBOARD_TITLE" default:"월별 매출 대시보드"`
		Layout      string `envconfig:"DASHBOARD_LAYOUT" default:"wide"`
		ChartWidth  int    `envconfig:"CHART_WIDTH" default:"560"`
		ChartHeight int    `envconfig:"CHART_HEIGHT" default:"320"`
	}
}

// DashboardConfig builds the page configuration; the palette is fixed.
func (c *Config) DashboardConfig() dashboard.Config {
	dc := dashboard.DefaultConfig()
	dc.PageTitle = c.Dashboard.Title
	dc.Layout = dashboard.Layout(c.Dashboard.Layout)
	dc.ChartWidth = c.Dashboard.ChartWidth
	dc.ChartHeight = c.Dashboard.ChartHeight

	return dc
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
