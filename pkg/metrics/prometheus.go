// Package metrics provides Prometheus metrics for the KIFU rating engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the rating engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Calculation runs
	runsTotal        *prometheus.CounterVec
	runDuration      *prometheus.HistogramVec
	runErrors        *prometheus.CounterVec
	matchesProcessed prometheus.Counter

	// Run outputs
	activePlayers  prometheus.Gauge
	trackedPlayers prometheus.Gauge

	// History building
	snapshotsBuilt  prometheus.Counter
	snapshotMonths  prometheus.Histogram
	promotionsGiven prometheus.Counter

	// Swiss standings
	standingsComputed prometheus.Counter
	standingsPlayers  prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "kifu",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.runsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Total calculation runs, labeled by operation",
	}, []string{"op"})

	m.runDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_seconds",
		Help:      "Histogram of calculation run durations, labeled by operation",
		Buckets:   m.histogramBuckets,
	}, []string{"op"})

	m.runErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_errors_total",
		Help:      "Total failed calculation runs, labeled by operation",
	}, []string{"op"})

	m.matchesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_processed_total",
		Help:      "Total matches fed through the rating engine",
	})

	m.activePlayers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_players",
		Help:      "Active players in the most recent rating run",
	})

	m.trackedPlayers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tracked_players",
		Help:      "Players with state in the most recent rating run",
	})

	m.snapshotsBuilt = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshots_built_total",
		Help:      "Total monthly snapshots produced by history builds",
	})

	m.snapshotMonths = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_months",
		Help:      "Histogram of months covered per history build",
		Buckets:   []float64{1, 3, 6, 12, 24, 48, 96},
	})

	m.promotionsGiven = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "promotion_bonuses_total",
		Help:      "Total one-time promotion bonuses injected",
	})

	m.standingsComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "standings_computed_total",
		Help:      "Total Swiss standings computations",
	})

	m.standingsPlayers = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "standings_players",
		Help:      "Histogram of player counts per standings computation",
		Buckets:   []float64{2, 4, 8, 16, 32, 64, 128},
	})
}

// RecordRun records one completed calculation run.
func RecordRun(op string, seconds float64) {
	if globalManager != nil && globalManager.enabled {
		globalManager.runsTotal.WithLabelValues(op).Inc()
		globalManager.runDuration.WithLabelValues(op).Observe(seconds)
	}
}

// RecordRunError records one failed calculation run.
func RecordRunError(op string) {
	if globalManager != nil && globalManager.enabled {
		globalManager.runErrors.WithLabelValues(op).Inc()
	}
}

// RecordMatchesProcessed adds to the processed-match counter.
func RecordMatchesProcessed(n int) {
	if globalManager != nil && globalManager.enabled && n > 0 {
		globalManager.matchesProcessed.Add(float64(n))
	}
}

// UpdateActivePlayers sets the active-player gauge.
func UpdateActivePlayers(n int) {
	if globalManager != nil && globalManager.enabled {
		globalManager.activePlayers.Set(float64(n))
	}
}

// UpdateTrackedPlayers sets the tracked-player gauge.
func UpdateTrackedPlayers(n int) {
	if globalManager != nil && globalManager.enabled {
		globalManager.trackedPlayers.Set(float64(n))
	}
}

// RecordSnapshotsBuilt records one history build's output size.
func RecordSnapshotsBuilt(months int) {
	if globalManager != nil && globalManager.enabled {
		globalManager.snapshotsBuilt.Add(float64(months))
		globalManager.snapshotMonths.Observe(float64(months))
	}
}

// RecordPromotionBonuses adds to the promotion-bonus counter.
func RecordPromotionBonuses(n int) {
	if globalManager != nil && globalManager.enabled && n > 0 {
		globalManager.promotionsGiven.Add(float64(n))
	}
}

// RecordStandings records one Swiss standings computation.
func RecordStandings(players int) {
	if globalManager != nil && globalManager.enabled {
		globalManager.standingsComputed.Inc()
		globalManager.standingsPlayers.Observe(float64(players))
	}
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
