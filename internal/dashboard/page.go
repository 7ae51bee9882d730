package dashboard

import (
	"html/template"

	"github.com/MrJamesThe3rd/revdash/internal/format"
	"github.com/MrJamesThe3rd/revdash/internal/revenue"
)

const footer = "CSV 형식: 월(YYYY-MM), 매출액, 전년동월, 증감률  |  예시 데이터 포함"

// Page is the view model executed by the page template.
type Page struct {
	Title     string
	Layout    Layout
	ReportID  string
	Source    string
	UseSample bool

	// Error is set on the error page; nothing else is rendered then.
	Error string

	Caption   string
	Downloads []Download
	KPIs      []KPI
	Charts    []Panel
	Heatmap   []HeatCell
	Preview   Preview
	Footer    string
}

// KPI is one summary tile.
type KPI struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Help  string `json:"help,omitempty"`
}

// Panel is one chart with its heading. Empty panels show a placeholder.
type Panel struct {
	Title string
	SVG   template.HTML
	Empty bool
}

// Download is a data URI link to an exported artifact.
type Download struct {
	Label    string
	Filename string
	Href     template.URL
}

// Preview is the formatted table of every derived column.
type Preview struct {
	Header []string
	Rows   [][]string
}

// KPIs builds the four summary tiles.
func KPIs(t *revenue.Table, s *revenue.Summary) []KPI {
	last := s.Last

	extremes := KPI{Label: "최고 · 최저 매출 달", Value: "-"}

	maxRec, hasMax := s.MaxRecord(t)
	minRec, hasMin := s.MinRecord(t)

	if hasMax && hasMin {
		extremes.Value = maxRec.Period + " / " + minRec.Period
		extremes.Help = "최고 " + format.Money(maxRec.Revenue) + " · 최저 " + format.Money(minRec.Revenue)
	}

	return []KPI{
		{
			Label: "이번 달 매출",
			Value: format.Won(last.Revenue),
			Help:  last.Period + " 기준",
		},
		{
			Label: "전년 동월 대비 증가율",
			Value: format.Percent(last.YoYChangePct),
		},
		{
			Label: "연간 누적 매출",
			Value: format.Won(s.TotalRevenue),
			Help:  periodRange(s),
		},
		extremes,
	}
}

// PreviewTable formats the normalized table for display.
func PreviewTable(t *revenue.Table) Preview {
	p := Preview{
		Header: []string{
			revenue.ColPeriod,
			revenue.ColRevenue,
			revenue.ColPriorYear,
			revenue.ColChange,
			revenue.ColCumulative,
		},
		Rows: make([][]string, 0, t.Len()),
	}

	for _, r := range t.Records {
		p.Rows = append(p.Rows, []string{
			r.Period,
			format.Money(r.Revenue),
			format.Money(r.PriorYearRevenue),
			format.Percent(r.YoYChangePct),
			format.Money(r.CumulativeRevenue),
		})
	}

	return p
}

func periodRange(s *revenue.Summary) string {
	return s.FirstPeriod + " ~ " + s.LastPeriod
}
