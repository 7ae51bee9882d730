package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MrJamesThe3rd/revdash/internal/config"
	"github.com/MrJamesThe3rd/revdash/internal/dashboard"
	"github.com/MrJamesThe3rd/revdash/internal/export"
	revHttp "github.com/MrJamesThe3rd/revdash/internal/http"
	dashboardHandler "github.com/MrJamesThe3rd/revdash/internal/http/dashboard"
	exportHandler "github.com/MrJamesThe3rd/revdash/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/revdash/internal/http/importcsv"
	"github.com/MrJamesThe3rd/revdash/internal/importer"
	"github.com/MrJamesThe3rd/revdash/internal/metrics"
	"github.com/MrJamesThe3rd/revdash/internal/report"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var (
		reportService = report.NewService(importer.NewService(), metrics.New(reg))
		exportService = export.NewService()
	)

	renderer, err := dashboard.NewRenderer(cfg.DashboardConfig(), exportService)
	if err != nil {
		slog.Error("failed to create renderer", "error", err)
		os.Exit(1)
	}

	var (
		dashboardH = dashboardHandler.NewHandler(reportService, renderer, cfg.Server.MaxUploadBytes)
		importH    = importHandler.NewHandler(reportService, cfg.Server.MaxUploadBytes)
		exportH    = exportHandler.NewHandler(exportService, reportService, cfg.Server.MaxUploadBytes)
	)

	router := revHttp.New(revHttp.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		Gatherer:    reg,
	}, dashboardH, importH, exportH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr)

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
