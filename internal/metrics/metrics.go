// Package metrics holds the prometheus collectors of the render pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for Builds.
const (
	OutcomeOK         = "ok"
	OutcomeValidation = "validation_error"
	OutcomeEmpty      = "empty"
	OutcomeReadError  = "read_error"
)

type Metrics struct {
	Builds *prometheus.CounterVec
	Rows   prometheus.Histogram
	Coerce prometheus.Counter
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "revdash",
			Name:      "report_builds_total",
			Help:      "Report builds by source and outcome.",
		}, []string{"source", "outcome"}),
		Rows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "revdash",
			Name:      "report_rows",
			Help:      "Rows in successfully normalized tables.",
			Buckets:   []float64{1, 3, 6, 12, 24, 60, 120},
		}),
		Coerce: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "revdash",
			Name:      "numeric_coercion_failures_total",
			Help:      "Numeric cells that could not be parsed and were kept as NaN.",
		}),
	}

	reg.MustRegister(m.Builds, m.Rows, m.Coerce)

	return m
}
