package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	FetchesTotal  *prometheus.CounterVec   // labels: slot={categorical,tornado,wind,hail,forecast}, outcome={resolved,failed}
	FetchDuration *prometheus.HistogramVec // labels: slot
	ActiveFetches prometheus.Gauge

	ActivationsTotal  prometheus.Counter
	OutlookSelections *prometheus.CounterVec // labels: variant

	SnapshotPublishes *prometheus.CounterVec // labels: outcome={success,error}
	PublishEnabled    prometheus.Gauge
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meso",
			Name:      "fetches_total",
			Help:      "Upstream fetches by slot and outcome.",
		}, []string{"slot", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "meso",
			Name:      "fetch_duration_seconds",
			Help:      "Upstream fetch duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"slot"}),
		ActiveFetches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "meso",
			Name:      "active_fetches",
			Help:      "Fetches currently in flight.",
		}),
		ActivationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meso",
			Name:      "activations_total",
			Help:      "Dashboard activations, including manual refreshes.",
		}),
		OutlookSelections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meso",
			Name:      "outlook_selections_total",
			Help:      "Outlook map selections by variant.",
		}, []string{"variant"}),
		SnapshotPublishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meso",
			Name:      "snapshot_publishes_total",
			Help:      "Snapshot publish attempts by outcome.",
		}, []string{"outcome"}),
		PublishEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "meso",
			Name:      "snapshot_publish_enabled",
			Help:      "1 when Kafka snapshot publishing is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.FetchesTotal,
		m.FetchDuration,
		m.ActiveFetches,
		m.ActivationsTotal,
		m.OutlookSelections,
		m.SnapshotPublishes,
		m.PublishEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FetchesTotal:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "meso", Name: "fetches_total"}, []string{"slot", "outcome"}),
		FetchDuration:     prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "meso", Name: "fetch_duration_seconds"}, []string{"slot"}),
		ActiveFetches:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "meso", Name: "active_fetches"}),
		ActivationsTotal:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "meso", Name: "activations_total"}),
		OutlookSelections: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "meso", Name: "outlook_selections_total"}, []string{"variant"}),
		SnapshotPublishes: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "meso", Name: "snapshot_publishes_total"}, []string{"outcome"}),
		PublishEnabled:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "meso", Name: "snapshot_publish_enabled"}),
	}
}
