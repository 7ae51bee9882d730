package export

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	enc "github.com/MrJamesThe3rd/revdash/internal/encoding"
	"github.com/MrJamesThe3rd/revdash/internal/format"
	"github.com/MrJamesThe3rd/revdash/internal/report"
	"github.com/MrJamesThe3rd/revdash/internal/revenue"
)

// Artifact names a downloadable file.
type Artifact string

const (
	ArtifactOriginalCSV Artifact = "original.csv"
	ArtifactCleanCSV    Artifact = "clean.csv"
	ArtifactCleanXLSX   Artifact = "clean.xlsx"
	ArtifactSummary     Artifact = "summary.txt"
	ArtifactBundle      Artifact = "bundle.zip"
)

// Artifacts lists what WriteDir and WriteBundle produce, in order.
var Artifacts = []Artifact{ArtifactOriginalCSV, ArtifactCleanCSV, ArtifactCleanXLSX, ArtifactSummary}

const sheetName = "clean"

// ContentType returns the MIME type of a.
func (a Artifact) ContentType() string {
	switch a {
	case ArtifactOriginalCSV, ArtifactCleanCSV:
		return "text/csv; charset=utf-8"
	case ArtifactCleanXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ArtifactSummary:
		return "text/plain; charset=utf-8"
	case ArtifactBundle:
		return "application/zip"
	}

	return "application/octet-stream"
}

// ParseArtifact validates an artifact name coming from a request.
func ParseArtifact(s string) (Artifact, error) {
	a := Artifact(s)
	switch a {
	case ArtifactOriginalCSV, ArtifactCleanCSV, ArtifactCleanXLSX, ArtifactSummary, ArtifactBundle:
		return a, nil
	}

	return "", fmt.Errorf("unknown artifact: %q", s)
}

// Service writes the downloadable artifacts of a report.
type Service struct{}

// NewService creates a new export Service.
func NewService() *Service {
	return &Service{}
}

// Write renders artifact a of rep to w.
func (s *Service) Write(w io.Writer, a Artifact, rep *report.Report) error {
	switch a {
	case ArtifactOriginalCSV:
		return s.WriteOriginalCSV(w, rep.Raw)
	case ArtifactCleanCSV:
		return s.WriteCleanCSV(w, rep.Table)
	case ArtifactCleanXLSX:
		return s.WriteXLSX(w, rep.Table)
	case ArtifactSummary:
		_, err := io.WriteString(w, s.GenerateSummary(rep.Table))
		return err
	case ArtifactBundle:
		return s.WriteBundle(w, rep)
	}

	return fmt.Errorf("unknown artifact: %q", a)
}

// WriteOriginalCSV writes the input table unmodified, UTF-8 with BOM.
func (s *Service) WriteOriginalCSV(w io.Writer, raw *revenue.RawTable) error {
	bw, err := enc.NewBOMWriter(w)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(bw)

	if err := cw.Write(raw.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if err := cw.WriteAll(raw.Rows); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}

	return nil
}

// WriteCleanCSV writes the normalized table including derived columns,
// UTF-8 with BOM. Invalid numbers are written as empty cells.
func (s *Service) WriteCleanCSV(w io.Writer, t *revenue.Table) error {
	bw, err := enc.NewBOMWriter(w)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(bw)

	if err := cw.Write(revenue.CleanColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range t.Records {
		row := []string{
			r.Period,
			r.Revenue.Text(),
			r.PriorYearRevenue.Text(),
			r.YoYChangePct.Text(),
			r.CumulativeRevenue.Text(),
			strconv.Itoa(r.Month),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %s: %w", r.Period, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteXLSX writes the normalized table as a workbook with numeric cells.
func (s *Service) WriteXLSX(w io.Writer, t *revenue.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(revenue.CleanColumns))
	for i, c := range revenue.CleanColumns {
		header[i] = c
	}

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range t.Records {
		row := []any{
			r.Period,
			cellValue(r.Revenue),
			cellValue(r.PriorYearRevenue),
			cellValue(r.YoYChangePct),
			cellValue(r.CumulativeRevenue),
			r.Month,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %s: %w", r.Period, err)
		}
	}

	if err := s.styleSheet(f, t.Len()+1); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

func (s *Service) styleSheet(f *excelize.File, lastRow int) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	// 3 is the built-in "#,##0" format.
	money, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return fmt.Errorf("creating money style: %w", err)
	}

	pct := "0.0"

	percent, err := f.NewStyle(&excelize.Style{CustomNumFmt: &pct})
	if err != nil {
		return fmt.Errorf("creating percent style: %w", err)
	}

	if err := f.SetCellStyle(sheetName, "A1", "F1", bold); err != nil {
		return err
	}

	if lastRow > 1 {
		last := strconv.Itoa(lastRow)

		if err := f.SetCellStyle(sheetName, "B2", "C"+last, money); err != nil {
			return err
		}

		if err := f.SetCellStyle(sheetName, "D2", "D"+last, percent); err != nil {
			return err
		}

		if err := f.SetCellStyle(sheetName, "E2", "E"+last, money); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheetName, "A", "F", 14)
}

func cellValue(n revenue.Number) any {
	v, ok := n.Float64()
	if !ok {
		return nil
	}

	return v
}

// WriteBundle writes every artifact of rep into one zip archive.
func (s *Service) WriteBundle(w io.Writer, rep *report.Report) error {
	zw := zip.NewWriter(w)

	for _, a := range Artifacts {
		zf, err := zw.Create(string(a))
		if err != nil {
			return fmt.Errorf("creating %s: %w", a, err)
		}

		if err := s.Write(zf, a, rep); err != nil {
			return fmt.Errorf("writing %s: %w", a, err)
		}
	}

	return zw.Close()
}

// WriteDir writes every artifact of rep into dir and returns the paths.
func (s *Service) WriteDir(dir string, rep *report.Report) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paths := make([]string, 0, len(Artifacts))

	for _, a := range Artifacts {
		path := filepath.Join(dir, string(a))

		if err := s.writeFile(path, a, rep); err != nil {
			return nil, err
		}

		paths = append(paths, path)
	}

	return paths, nil
}

func (s *Service) writeFile(path string, a Artifact, rep *report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := s.Write(f, a, rep); err != nil {
		return fmt.Errorf("writing %s: %w", a, err)
	}

	return f.Close()
}

// GenerateSummary creates a plain-text line per month of the table.
func (s *Service) GenerateSummary(t *revenue.Table) string {
	var sb strings.Builder

	for _, r := range t.Records {
		sb.WriteString(fmt.Sprintf("* %s | %s | 전년 %s | %s | 누적 %s\n",
			r.Period,
			format.Won(r.Revenue),
			format.Won(r.PriorYearRevenue),
			format.Percent(r.YoYChangePct),
			format.Won(r.CumulativeRevenue),
		))
	}

	return sb.String()
}
