package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"agenda-horario/retention/pkg/config"
)

// Sweep run statuses used as the "status" label.
const (
	StatusSuccess = "success"
	StatusEmpty   = "empty"
	StatusError   = "error"
)

// Collector owns the Prometheus registry and the sweeper's metric families.
// A disabled collector accepts every call and records nothing.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	sweepMetrics *SweepMetrics
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "lgpd",
//		Subsystem: "sweeper",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		// Single query plus one commit: sub-second locally, seconds against Firestore
		cfg.DurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}
	}

	if cfg.RuntimeMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return &Collector{
		config:       cfg,
		registry:     registry,
		sweepMetrics: NewSweepMetrics(cfg, registry),
	}
}

// RecordSweep records the outcome of a sweep run.
//
// Parameters:
//   - status: StatusSuccess, StatusEmpty or StatusError
//   - matched: records older than the cutoff
//   - deleted: records removed by the batch (0 on error)
//   - cutoff: cutoff used by the run
//   - duration: wall time of the run
func (c *Collector) RecordSweep(status string, matched, deleted int, cutoff time.Time, duration time.Duration) {
	if c == nil || !c.config.Enabled {
		return
	}

	c.sweepMetrics.RecordRun(status, matched, deleted, cutoff, duration, time.Now())
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
