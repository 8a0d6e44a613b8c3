package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the plant data
// validation pipeline.
type Metrics struct {
	TablesLoaded       prometheus.Counter
	ColumnsRenamed     prometheus.Counter
	CoercionErrors     prometheus.Counter
	ValidationRuns     prometheus.Counter
	ValidationFailures prometheus.Counter

	ValidationDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		TablesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wind_plant",
			Name:      "tables_loaded_total",
			Help:      "Total data tables ingested (copied or read from file).",
		}),
		ColumnsRenamed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wind_plant",
			Name:      "columns_renamed_total",
			Help:      "Total source columns renamed to canonical names.",
		}),
		CoercionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wind_plant",
			Name:      "coercion_errors_total",
			Help:      "Total values that could not be coerced to their canonical dtype.",
		}),
		ValidationRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wind_plant",
			Name:      "validation_runs_total",
			Help:      "Total completeness validation passes.",
		}),
		ValidationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wind_plant",
			Name:      "validation_failures_total",
			Help:      "Total completeness validation passes that found issues.",
		}),
		ValidationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wind_plant",
			Name:      "validation_duration_seconds",
			Help:      "Duration of a completeness validation pass.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
	}

	prometheus.MustRegister(
		m.TablesLoaded,
		m.ColumnsRenamed,
		m.CoercionErrors,
		m.ValidationRuns,
		m.ValidationFailures,
		m.ValidationDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		TablesLoaded:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wind_plant", Name: "tables_loaded_total"}),
		ColumnsRenamed:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wind_plant", Name: "columns_renamed_total"}),
		CoercionErrors:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wind_plant", Name: "coercion_errors_total"}),
		ValidationRuns:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wind_plant", Name: "validation_runs_total"}),
		ValidationFailures: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wind_plant", Name: "validation_failures_total"}),
		ValidationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "wind_plant", Name: "validation_duration_seconds"}),
	}
}
