// Package metrics collects run statistics in a private Prometheus registry
// and writes them in the node_exporter textfile format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bfty"

// Metrics holds the counters, histograms, and gauges for one run.
type Metrics struct {
	Registry *prometheus.Registry

	DatasetsProcessed *prometheus.CounterVec   // labels: outcome={success,error}
	Exports           *prometheus.CounterVec   // labels: format, outcome={success,error}
	StageDuration     *prometheus.HistogramVec // labels: stage
	AnnualRain        *prometheus.GaugeVec     // labels: dataset
	RunTimestamp      prometheus.Gauge
}

// New creates and registers all run metrics with a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		DatasetsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datasets_processed_total",
			Help:      "Test years computed, by outcome.",
		}, []string{"outcome"}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Per-year exports by format and outcome.",
		}, []string{"format", "outcome"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of one derivation stage for one year.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"stage"}),
		AnnualRain: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "wind_driven_rain_annual_liters_per_square_meter",
			Help:      "Annual wind-driven rain on the analysed facade.",
		}, []string{"dataset"}),
		RunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
	}

	m.Registry.MustRegister(
		m.DatasetsProcessed,
		m.Exports,
		m.StageDuration,
		m.AnnualRain,
		m.RunTimestamp,
	)
	return m
}

// WriteTextfile writes the current values to path.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
