package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides Prometheus metrics for the coordinator's engine and
// store operations. With collection disabled every method is a no-op, so
// callers never need to branch.
type Metrics struct {
	config MetricsConfig

	scansTotal        prometheus.Counter
	scanDuration      prometheus.Histogram
	conflictsDetected *prometheus.CounterVec
	advisoriesRaised  *prometheus.CounterVec

	matchRequests *prometheus.CounterVec
	matchDuration *prometheus.HistogramVec

	reassignmentPlans *prometheus.CounterVec

	snapshotLoads   *prometheus.CounterVec
	snapshotRecords *prometheus.GaugeVec
	statusUpdates   *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates a metrics collector with the given configuration.
func NewMetrics(cfg MetricsConfig) (*Metrics, error) {
	if !cfg.Enabled {
		return &Metrics{config: cfg}, nil
	}

	namespace := cfg.Namespace
	registry := prometheus.NewRegistry()

	m := &Metrics{
		config:   cfg,
		registry: registry,

		scansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Total number of conflict scans run",
		}),
		scanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Duration of conflict scans in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		conflictsDetected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "conflicts_detected_total",
				Help:      "Total conflicts detected, by type and severity",
			},
			[]string{"type", "severity"},
		),
		advisoriesRaised: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "advisories_raised_total",
				Help:      "Total data-quality advisories raised, by code",
			},
			[]string{"code"},
		),
		matchRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "match_requests_total",
				Help:      "Total candidate matching requests, by resource kind",
			},
			[]string{"kind"},
		),
		matchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "match_duration_seconds",
				Help:      "Duration of candidate matching in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		reassignmentPlans: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reassignment_plans_total",
				Help:      "Total reassignment plans computed, by outcome",
			},
			[]string{"outcome"},
		),
		snapshotLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "snapshot_loads_total",
				Help:      "Total snapshot loads from the backing store, by result",
			},
			[]string{"result"},
		),
		snapshotRecords: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "snapshot_records",
				Help:      "Record counts in the most recently loaded snapshot",
			},
			[]string{"kind"},
		),
		statusUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "status_updates_total",
				Help:      "Total resource status updates written, by kind",
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(
		m.scansTotal,
		m.scanDuration,
		m.conflictsDetected,
		m.advisoriesRaised,
		m.matchRequests,
		m.matchDuration,
		m.reassignmentPlans,
		m.snapshotLoads,
		m.snapshotRecords,
		m.statusUpdates,
	)

	return m, nil
}

// Handler returns the HTTP handler serving the metrics endpoint, or nil
// when collection is disabled.
func (m *Metrics) Handler() http.Handler {
	if m.registry == nil {
		return nil
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordScan records a completed conflict scan.
func (m *Metrics) RecordScan(duration time.Duration) {
	if m.registry == nil {
		return
	}
	m.scansTotal.Inc()
	m.scanDuration.Observe(duration.Seconds())
}

// RecordConflict counts one detected conflict.
func (m *Metrics) RecordConflict(conflictType, severity string) {
	if m.registry == nil {
		return
	}
	m.conflictsDetected.WithLabelValues(conflictType, severity).Inc()
}

// RecordAdvisory counts one raised advisory.
func (m *Metrics) RecordAdvisory(code string) {
	if m.registry == nil {
		return
	}
	m.advisoriesRaised.WithLabelValues(code).Inc()
}

// RecordMatch records a completed matching request.
func (m *Metrics) RecordMatch(kind string, duration time.Duration) {
	if m.registry == nil {
		return
	}
	m.matchRequests.WithLabelValues(kind).Inc()
	m.matchDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordReassignment records a computed reassignment plan. Outcome is
// "replaced" when a replacement was found, "blocked" otherwise.
func (m *Metrics) RecordReassignment(outcome string) {
	if m.registry == nil {
		return
	}
	m.reassignmentPlans.WithLabelValues(outcome).Inc()
}

// RecordSnapshotLoad records a snapshot load attempt and, on success, the
// record counts it produced.
func (m *Metrics) RecordSnapshotLoad(err error, pilots, drones, missions int) {
	if m.registry == nil {
		return
	}
	if err != nil {
		m.snapshotLoads.WithLabelValues("error").Inc()
		return
	}
	m.snapshotLoads.WithLabelValues("ok").Inc()
	m.snapshotRecords.WithLabelValues("pilots").Set(float64(pilots))
	m.snapshotRecords.WithLabelValues("drones").Set(float64(drones))
	m.snapshotRecords.WithLabelValues("missions").Set(float64(missions))
}

// RecordStatusUpdate counts one status update written to the store.
func (m *Metrics) RecordStatusUpdate(kind string) {
	if m.registry == nil {
		return
	}
	m.statusUpdates.WithLabelValues(kind).Inc()
}
