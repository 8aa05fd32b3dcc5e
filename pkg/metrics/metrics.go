// Package metrics exposes Prometheus counters for widget fetches and
// companion progression. Each Metrics owns its registry so several
// dashboards in one process do not collide.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "feedtui"

// Metrics implements scheduler.Recorder and companion.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	fetches       *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	level         prometheus.Gauge
	xpAwarded     prometheus.Counter
	saveFailures  prometheus.Counter
}

// New registers the dashboard metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Widget fetches by source kind and outcome.",
		}, []string{"kind", "outcome"}),
		fetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time spent fetching widget data.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"kind"}),
		level: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "companion_level",
			Help:      "Current companion level.",
		}),
		xpAwarded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "companion_xp_awarded_total",
			Help:      "XP awarded to the companion this session.",
		}),
		saveFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "companion_save_failures_total",
			Help:      "Companion record writes that failed.",
		}),
	}
}

// ObserveFetch records one finished fetch. outcome is "ok" or an error code.
func (m *Metrics) ObserveFetch(kind, outcome string, elapsed time.Duration) {
	m.fetches.WithLabelValues(kind, outcome).Inc()
	m.fetchDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// SetCompanionLevel updates the level gauge.
func (m *Metrics) SetCompanionLevel(level int) {
	m.level.Set(float64(level))
}

// AddCompanionXP counts awarded XP.
func (m *Metrics) AddCompanionXP(xp int) {
	if xp > 0 {
		m.xpAwarded.Add(float64(xp))
	}
}

// CompanionSaveFailed counts a failed record write.
func (m *Metrics) CompanionSaveFailed() {
	m.saveFailures.Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
