package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for one CLI run.
// A run is short-lived, so values are flushed to a node-exporter textfile
// instead of being scraped.
// ⭐ SSOT: 메트릭 정의는 여기서만
type Metrics struct {
	registry *prometheus.Registry

	DatasetFetches   *prometheus.CounterVec   // labels: category, outcome={success,error}
	DatasetCache     *prometheus.CounterVec   // labels: category, result={hit,miss}
	DatasetRows      *prometheus.GaugeVec     // labels: category
	FetchDuration    *prometheus.HistogramVec // labels: category
	Classifications  *prometheus.CounterVec   // labels: category={none,home,hotel}
	LastRunTimestamp prometheus.Gauge
}

// New creates Metrics on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		DatasetFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "covid_europe",
			Name:      "dataset_fetches_total",
			Help:      "ECDC dataset downloads by category and outcome.",
		}, []string{"category", "outcome"}),
		DatasetCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "covid_europe",
			Name:      "dataset_cache_total",
			Help:      "Dataset memo lookups by category and result.",
		}, []string{"category", "result"}),
		DatasetRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "covid_europe",
			Name:      "dataset_rows",
			Help:      "Rows parsed from the most recent download of a category.",
		}, []string{"category"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "covid_europe",
			Name:      "dataset_fetch_duration_seconds",
			Help:      "Download and parse duration of an ECDC dataset.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"category"}),
		Classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "covid_europe",
			Name:      "classifications_total",
			Help:      "Quarantine classifications produced by category.",
		}, []string{"category"}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "covid_europe",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last report was produced.",
		}),
	}

	m.registry.MustRegister(
		m.DatasetFetches,
		m.DatasetCache,
		m.DatasetRows,
		m.FetchDuration,
		m.Classifications,
		m.LastRunTimestamp,
	)

	return m
}

// Registry exposes the private registry (tests, textfile output)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile atomically writes all metrics in text exposition format
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
