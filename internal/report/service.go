package report

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/revdash/internal/importer"
	"github.com/MrJamesThe3rd/revdash/internal/metrics"
	"github.com/MrJamesThe3rd/revdash/internal/revenue"
)

// SourceSample names reports built from the built-in dataset.
const SourceSample = "sample"

//go:generate mockgen -source=service.go -destination=loader_mock.go -package=report
type Loader interface {
	Import(format importer.Format, r io.Reader) (*revenue.RawTable, error)
	Sample() *revenue.RawTable
}

// Source is one input submission. The sample dataset is used when UseSample
// is set or no Body is supplied.
type Source struct {
	UseSample bool
	Filename  string
	Body      io.Reader
}

// Report is the outcome of one pass over an input. It lives for a single
// render and is never shared.
type Report struct {
	ID      uuid.UUID
	Source  string
	Raw     *revenue.RawTable
	Table   *revenue.Table
	Summary *revenue.Summary
}

type Service struct {
	loader  Loader
	metrics *metrics.Metrics
}

func NewService(loader Loader, m *metrics.Metrics) *Service {
	return &Service{loader: loader, metrics: m}
}

// Build loads, normalizes and summarizes src. On failure the error is one of
// *revenue.ValidationError, revenue.ErrEmptyDataset or a wrapped read error.
func (s *Service) Build(src Source) (*Report, error) {
	rep := &Report{ID: uuid.New()}

	raw, err := s.load(src, rep)
	if err != nil {
		s.observe(rep.Source, metrics.OutcomeReadError)
		return nil, fmt.Errorf("read input: %w", err)
	}

	rep.Raw = raw

	tbl, err := revenue.Normalize(raw)
	if err != nil {
		s.observe(rep.Source, metrics.OutcomeValidation)
		slog.Info("rejected input", "report_id", rep.ID, "source", rep.Source, "error", err)

		return nil, err
	}

	rep.Table = tbl

	sum, err := revenue.Summarize(tbl)
	if err != nil {
		if errors.Is(err, revenue.ErrEmptyDataset) {
			s.observe(rep.Source, metrics.OutcomeEmpty)
		}

		return nil, err
	}

	rep.Summary = sum

	invalid := countInvalid(tbl)
	if s.metrics != nil {
		s.metrics.Rows.Observe(float64(tbl.Len()))
		s.metrics.Coerce.Add(float64(invalid))
	}

	s.observe(rep.Source, metrics.OutcomeOK)
	slog.Info("built report",
		"report_id", rep.ID,
		"source", rep.Source,
		"rows", tbl.Len(),
		"invalid_numbers", invalid,
		"range", sum.FirstPeriod+"~"+sum.LastPeriod,
	)

	return rep, nil
}

func (s *Service) load(src Source, rep *Report) (*revenue.RawTable, error) {
	if src.UseSample || src.Body == nil {
		rep.Source = SourceSample
		return s.loader.Sample(), nil
	}

	rep.Source = src.Filename
	if rep.Source == "" {
		rep.Source = "upload"
	}

	return s.loader.Import(importer.FormatFromFilename(src.Filename), src.Body)
}

func (s *Service) observe(source, outcome string) {
	if s.metrics == nil {
		return
	}

	label := "upload"
	if source == SourceSample {
		label = SourceSample
	}

	s.metrics.Builds.WithLabelValues(label, outcome).Inc()
}

func countInvalid(t *revenue.Table) int {
	n := 0

	for _, r := range t.Records {
		for _, v := range []revenue.Number{r.Revenue, r.PriorYearRevenue, r.YoYChangePct} {
			if !v.IsValid() {
				n++
			}
		}
	}

	return n
}
