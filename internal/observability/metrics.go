package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// report pipeline.
type Metrics struct {
	RowsExtracted    prometheus.Counter
	MalformedRows    prometheus.Counter
	RunsTotal        prometheus.Counter
	RunFailures      prometheus.Counter
	ReportsPublished *prometheus.CounterVec // label: publisher={kafka,xlsx}
	PipelineRunning  prometheus.Gauge
	SnapshotCases    prometheus.Gauge
	RunDuration      prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "srag_etl",
			Name:      "rows_extracted_total",
			Help:      "Total raw case rows read from the snapshot.",
		}),
		MalformedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "srag_etl",
			Name:      "malformed_rows_total",
			Help:      "Total rows skipped because they could not be parsed.",
		}),
		RunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "srag_etl",
			Name:      "runs_total",
			Help:      "Total report runs started.",
		}),
		RunFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "srag_etl",
			Name:      "run_failures_total",
			Help:      "Total report runs that failed.",
		}),
		ReportsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "srag_etl",
			Name:      "reports_published_total",
			Help:      "Report bundles delivered, by publisher.",
		}, []string{"publisher"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "srag_etl",
			Name:      "pipeline_running",
			Help:      "1 while a report run is in progress.",
		}),
		SnapshotCases: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "srag_etl",
			Name:      "snapshot_cases",
			Help:      "Parsed case count of the most recent snapshot.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "srag_etl",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete extract-aggregate-publish run.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}

	prometheus.MustRegister(
		m.RowsExtracted,
		m.MalformedRows,
		m.RunsTotal,
		m.RunFailures,
		m.ReportsPublished,
		m.PipelineRunning,
		m.SnapshotCases,
		m.RunDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsExtracted:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "srag_etl", Name: "rows_extracted_total"}),
		MalformedRows:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "srag_etl", Name: "malformed_rows_total"}),
		RunsTotal:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "srag_etl", Name: "runs_total"}),
		RunFailures:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "srag_etl", Name: "run_failures_total"}),
		ReportsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "srag_etl", Name: "reports_published_total"}, []string{"publisher"}),
		PipelineRunning:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "srag_etl", Name: "pipeline_running"}),
		SnapshotCases:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "srag_etl", Name: "snapshot_cases"}),
		RunDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "srag_etl", Name: "run_duration_seconds"}),
	}
}
