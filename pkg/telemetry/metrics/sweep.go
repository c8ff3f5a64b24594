package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"agenda-horario/retention/pkg/config"
)

// SweepMetrics tracks retention sweep runs.
//
// Metrics:
//   - lgpd_sweeper_runs_total: Sweep runs by status ("success", "empty", "error")
//   - lgpd_sweeper_records_deleted_total: Records removed across all runs
//   - lgpd_sweeper_records_matched: Records matched by the most recent run
//   - lgpd_sweeper_run_duration_seconds: Sweep duration histogram
//   - lgpd_sweeper_last_success_timestamp_seconds: Unix time of the last successful run
//   - lgpd_sweeper_cutoff_timestamp_seconds: Cutoff used by the most recent run
type SweepMetrics struct {
	runsTotal      *prometheus.CounterVec
	deletedTotal   prometheus.Counter
	matched        prometheus.Gauge
	duration       prometheus.Histogram
	lastSuccess    prometheus.Gauge
	cutoffUnixTime prometheus.Gauge
}

// NewSweepMetrics creates and registers sweep metrics with the provided registry.
func NewSweepMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *SweepMetrics {
	sm := &SweepMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_total",
				Help:      "Total number of retention sweep runs",
			},
			[]string{"status"},
		),

		deletedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "records_deleted_total",
				Help:      "Total number of expired log records deleted",
			},
		),

		matched: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "records_matched",
				Help:      "Number of records older than the cutoff in the most recent run",
			},
		),

		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "run_duration_seconds",
				Help:      "Duration of retention sweep runs in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),

		lastSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "last_success_timestamp_seconds",
				Help:      "Unix time of the last successful sweep",
			},
		),

		cutoffUnixTime: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cutoff_timestamp_seconds",
				Help:      "Cutoff used by the most recent sweep as Unix time",
			},
		),
	}

	registry.MustRegister(
		sm.runsTotal,
		sm.deletedTotal,
		sm.matched,
		sm.duration,
		sm.lastSuccess,
		sm.cutoffUnixTime,
	)

	return sm
}

// RecordRun records the outcome of a single sweep.
func (sm *SweepMetrics) RecordRun(status string, matched, deleted int, cutoff time.Time, duration time.Duration, finished time.Time) {
	sm.runsTotal.WithLabelValues(status).Inc()
	sm.matched.Set(float64(matched))
	sm.duration.Observe(duration.Seconds())
	sm.cutoffUnixTime.Set(float64(cutoff.Unix()))

	if status != StatusError {
		sm.deletedTotal.Add(float64(deleted))
		sm.lastSuccess.Set(float64(finished.Unix()))
	}
}
