package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/revdash/internal/dashboard"
	"github.com/MrJamesThe3rd/revdash/internal/format"
	"github.com/MrJamesThe3rd/revdash/internal/report"
)

const barWidth = 30

var (
	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(24)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
)

type DashboardModel struct {
	CommonModel
	report  *report.Report
	palette dashboard.Palette
	table   table.Model
}

func NewDashboardModel(rep *report.Report, palette dashboard.Palette) DashboardModel {
	preview := dashboard.PreviewTable(rep.Table)

	columns := make([]table.Column, len(preview.Header))
	for i, h := range preview.Header {
		columns[i] = table.Column{Title: h, Width: 14}
	}

	rows := make([]table.Row, len(preview.Rows))
	for i, r := range preview.Rows {
		rows[i] = table.Row(r)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 12)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return DashboardModel{
		report:  rep,
		palette: palette,
		table:   t,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string { return "Esc: back | ↑/↓: scroll table" }

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m DashboardModel) View() string {
	sum := m.report.Summary

	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("월별 매출 대시보드"),
		helpStyle.Render(fmt.Sprintf("기간: %s ~ %s | %s", sum.FirstPeriod, sum.LastPeriod, m.report.Source)),
	)

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			m.viewKPIs(),
			"",
			titleStyle.Render("① 월별 매출액 & 전년동월 비교"),
			m.viewRevenueBars(),
			"",
			titleStyle.Render("② 전년 대비 증감률"),
			m.viewChangeBars(),
			"",
			titleStyle.Render("③ 최고 · 최저 매출 달"),
			m.viewExtremes(),
			"",
			titleStyle.Render("④ 누적 매출 추세"),
			m.viewCumulative(),
			"",
			titleStyle.Render("⑤ 월별 평균 증감률 히트맵"),
			m.viewHeatmap(),
			"",
			titleStyle.Render("⑥ 데이터 미리보기"),
			lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240")).
				Render(m.table.View()),
		),
	)
}

func (m DashboardModel) viewKPIs() string {
	kpis := dashboard.KPIs(m.report.Table, m.report.Summary)

	tiles := make([]string, len(kpis))
	for i, k := range kpis {
		tiles[i] = tileStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			labelStyle.Render(k.Label),
			valueStyle.Render(k.Value),
			helpStyle.Render(k.Help),
		))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

// viewRevenueBars draws revenue and prior-year revenue per month on a
// shared scale.
func (m DashboardModel) viewRevenueBars() string {
	limit := 0.0

	for _, r := range m.report.Table.Records {
		for _, n := range []float64{value(r.Revenue.Float64()), value(r.PriorYearRevenue.Float64())} {
			if !math.IsNaN(n) {
				limit = math.Max(limit, n)
			}
		}
	}

	revenue := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Revenue))
	prior := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Prior))

	var b strings.Builder

	for _, r := range m.report.Table.Records {
		fmt.Fprintf(&b, "%s %s %s\n",
			r.Period,
			revenue.Render(Bar(value(r.Revenue.Float64()), limit, barWidth)),
			format.Money(r.Revenue),
		)
		fmt.Fprintf(&b, "%7s %s %s\n",
			"",
			prior.Render(Bar(value(r.PriorYearRevenue.Float64()), limit, barWidth)),
			format.Money(r.PriorYearRevenue),
		)
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m DashboardModel) viewChangeBars() string {
	limit := 0.0

	for _, r := range m.report.Table.Records {
		if v, ok := r.YoYChangePct.Float64(); ok {
			limit = math.Max(limit, math.Abs(v))
		}
	}

	pos := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Positive))
	neg := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Negative))
	neutral := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Neutral))

	lines := make([]string, 0, m.report.Table.Len())

	for _, r := range m.report.Table.Records {
		v := value(r.YoYChangePct.Float64())

		style := neutral

		switch {
		case v > 0:
			style = pos
		case v < 0:
			style = neg
		}

		lines = append(lines, fmt.Sprintf("%s %s %s",
			r.Period,
			style.Render(DivergingBar(v, limit, barWidth/2)),
			format.Percent(r.YoYChangePct),
		))
	}

	return strings.Join(lines, "\n")
}

// viewExtremes draws revenue per month and marks the highest and lowest
// months.
func (m DashboardModel) viewExtremes() string {
	recs := m.report.Table.Records
	sum := m.report.Summary

	limit := 0.0
	for _, r := range recs {
		if v, ok := r.Revenue.Float64(); ok {
			limit = math.Max(limit, v)
		}
	}

	plain := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Revenue))
	high := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Positive)).Bold(true)
	low := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Negative)).Bold(true)

	lines := make([]string, 0, len(recs))

	for i, r := range recs {
		style, mark := plain, ""

		switch i {
		case sum.MaxIndex:
			style, mark = high, " ▲ 최고"
		case sum.MinIndex:
			style, mark = low, " ▼ 최저"
		}

		lines = append(lines, fmt.Sprintf("%s %s %s%s",
			r.Period,
			style.Render(Bar(value(r.Revenue.Float64()), limit, barWidth)),
			format.Money(r.Revenue),
			style.Render(mark),
		))
	}

	return strings.Join(lines, "\n")
}

func (m DashboardModel) viewCumulative() string {
	recs := m.report.Table.Records

	limit := 0.0
	for _, r := range recs {
		if v, ok := r.CumulativeRevenue.Float64(); ok {
			limit = math.Max(limit, v)
		}
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Revenue))

	lines := make([]string, 0, len(recs))

	for _, r := range recs {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			r.Period,
			style.Render(Bar(value(r.CumulativeRevenue.Float64()), limit, barWidth)),
			format.Money(r.CumulativeRevenue),
		))
	}

	return strings.Join(lines, "\n")
}

func (m DashboardModel) viewHeatmap() string {
	cells := dashboard.Heatmap(m.report.Table, m.palette)

	rendered := make([]string, len(cells))
	for i, c := range cells {
		rendered[i] = lipgloss.NewStyle().
			Background(lipgloss.Color(c.Color)).
			Foreground(lipgloss.Color(dashboard.TextColor(c.Color))).
			Padding(0, 1).
			Align(lipgloss.Center).
			Render(c.Period + "\n" + c.Label)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func value(v float64, ok bool) float64 {
	if !ok {
		return math.NaN()
	}

	return v
}
