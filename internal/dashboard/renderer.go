// Package dashboard renders a report as a single HTML page with KPI tiles,
// SVG charts, a YoY heatmap and a preview table.
package dashboard

import (
	"bytes"
	"embed"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/revdash/internal/export"
	"github.com/MrJamesThe3rd/revdash/internal/report"
	"github.com/MrJamesThe3rd/revdash/internal/revenue"
)

//go:embed templates/page.html
var templates embed.FS

// Exporter produces the downloadable artifacts linked from the page.
type Exporter interface {
	Write(w io.Writer, a export.Artifact, rep *report.Report) error
}

var downloads = []struct {
	label    string
	artifact export.Artifact
}{
	{"원본 CSV 다운로드", export.ArtifactOriginalCSV},
	{"정제 CSV 다운로드", export.ArtifactCleanCSV},
	{"정제 XLSX 다운로드", export.ArtifactCleanXLSX},
}

type Renderer struct {
	cfg      Config
	charts   *charts
	exporter Exporter
	tmpl     *template.Template
}

func NewRenderer(cfg Config, exporter Exporter) (*Renderer, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("dashboard config: %w", err)
	}

	tmpl, err := template.New("page.html").
		Funcs(template.FuncMap{"textColor": TextColor}).
		ParseFS(templates, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	return &Renderer{
		cfg:      cfg,
		charts:   &charts{width: cfg.ChartWidth, height: cfg.ChartHeight, palette: cfg.Palette},
		exporter: exporter,
		tmpl:     tmpl,
	}, nil
}

// Page builds the full view model of rep.
func (r *Renderer) Page(rep *report.Report) (*Page, error) {
	t, s := rep.Table, rep.Summary

	dl, err := r.downloads(rep)
	if err != nil {
		return nil, err
	}

	ps, err := r.panels(t, s)
	if err != nil {
		return nil, err
	}

	return &Page{
		Title:     r.cfg.PageTitle,
		Layout:    r.cfg.Layout,
		ReportID:  rep.ID.String(),
		Source:    rep.Source,
		UseSample: rep.Source == report.SourceSample,
		Caption:   periodRange(s),
		Downloads: dl,
		KPIs:      KPIs(t, s),
		Charts:    ps,
		Heatmap:   Heatmap(t, r.cfg.Palette),
		Preview:   PreviewTable(t),
		Footer:    footer,
	}, nil
}

// Render writes the dashboard of rep to w. The page is built completely
// before anything is written, so a failure leaves w untouched.
func (r *Renderer) Render(w io.Writer, rep *report.Report) error {
	page, err := r.Page(rep)
	if err != nil {
		return err
	}

	return r.execute(w, page)
}

// RenderError writes a page carrying only the error message.
func (r *Renderer) RenderError(w io.Writer, err error) error {
	return r.execute(w, &Page{
		Title:  r.cfg.PageTitle,
		Layout: r.cfg.Layout,
		Error:  ErrorMessage(err),
	})
}

// ErrorMessage turns a report.Build error into the text shown to the user.
func ErrorMessage(err error) string {
	var verr *revenue.ValidationError

	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, revenue.ErrEmptyDataset):
		return "데이터 행이 없습니다"
	}

	return err.Error()
}

func (r *Renderer) execute(w io.Writer, page *Page) error {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, page); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write page: %w", err)
	}

	return nil
}

func (r *Renderer) downloads(rep *report.Report) ([]Download, error) {
	out := make([]Download, 0, len(downloads))

	for _, d := range downloads {
		var buf bytes.Buffer
		if err := r.exporter.Write(&buf, d.artifact, rep); err != nil {
			return nil, fmt.Errorf("export %s: %w", d.artifact, err)
		}

		out = append(out, Download{
			Label:    d.label,
			Filename: string(d.artifact),
			Href:     dataURI(d.artifact.ContentType(), buf.Bytes()),
		})
	}

	return out, nil
}

func dataURI(contentType string, data []byte) template.URL {
	mime := strings.ReplaceAll(contentType, " ", "")

	return template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data))
}

func (r *Renderer) panels(t *revenue.Table, s *revenue.Summary) ([]Panel, error) {
	draws := []struct {
		title string
		draw  func() (template.HTML, error)
	}{
		{"① 월별 매출액 & 전년동월 비교", func() (template.HTML, error) { return r.charts.Comparison(t) }},
		{"② 전년 대비 증감률", func() (template.HTML, error) { return r.charts.ChangeBars(t) }},
		{"③ 최고 · 최저 매출 달", func() (template.HTML, error) { return r.charts.Extremes(t, s) }},
		{"④ 누적 매출 추세", func() (template.HTML, error) { return r.charts.Cumulative(t) }},
	}

	panels := make([]Panel, 0, len(draws))

	for _, d := range draws {
		svg, err := d.draw()

		switch {
		case errors.Is(err, errNoData):
			panels = append(panels, Panel{Title: d.title, Empty: true})
		case err != nil:
			return nil, fmt.Errorf("draw %q: %w", d.title, err)
		default:
			panels = append(panels, Panel{Title: d.title, SVG: svg})
		}
	}

	return panels, nil
}
