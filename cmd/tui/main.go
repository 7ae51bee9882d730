package main

import (
	"io"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/revdash/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/revdash/internal/config"
	"github.com/MrJamesThe3rd/revdash/internal/dashboard"
	"github.com/MrJamesThe3rd/revdash/internal/export"
	"github.com/MrJamesThe3rd/revdash/internal/importer"
	"github.com/MrJamesThe3rd/revdash/internal/report"
)

type model struct {
	reportService *report.Service
	exportService *export.Service
	palette       dashboard.Palette

	currentView View
	report      *report.Report
	status      string

	importView    view.ImportModel
	dashboardView view.DashboardModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewImport    View = 1
	ViewDashboard View = 2
	ViewExport    View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	reportSvc := report.NewService(importer.NewService(), nil)

	return model{
		reportService: reportSvc,
		exportService: export.NewService(),
		palette:       cfg.DashboardConfig().Palette,
		currentView:   ViewMenu,
		importView:    view.NewImportModel(reportSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.reportService)

				return m, m.importView.Init()
			case "2":
				if m.report == nil {
					m.status = "Load data first."
					return m, nil
				}

				m.currentView = ViewDashboard

				return m, m.dashboardView.Init()
			case "3":
				if m.report == nil {
					m.status = "Load data first."
					return m, nil
				}

				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService, m.report)

				return m, m.exportView.Init()
			}
		}
	case view.ReportLoadedMsg:
		m.report = msg.Report
		m.status = ""
		m.dashboardView = view.NewDashboardModel(msg.Report, m.palette)
		m.currentView = ViewDashboard

		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		loaded := "No data loaded"
		if m.report != nil {
			loaded = "Loaded: " + m.report.Source
		}

		return lipgloss.NewStyle().Padding(2).Render(
			"월별 매출 대시보드\n\n" +
				"1. Load Data\n" +
				"2. Dashboard\n" +
				"3. Export\n\n" +
				"q. Quit\n\n" +
				loaded + "\n" +
				lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("CSV 형식: 월(YYYY-MM), 매출액, 전년동월, 증감률") + "\n" +
				lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status),
		)
	case ViewImport:
		return m.importView.View()
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	m := initialModel()

	// Build logs would draw over the UI; keep them in a file when debugging.
	if os.Getenv("DEBUG") != "" {
		f, err := tea.LogToFile("debug.log", "revdash")
		if err != nil {
			slog.Error("failed to open log file", "error", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		log.SetOutput(os.Stderr)
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

