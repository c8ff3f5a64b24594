package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"agenda-horario/retention/pkg/config"
)

func newTestCollector(t *testing.T, enabled bool) (*Collector, *prometheus.Registry) {
	t.Helper()

	registry := prometheus.NewRegistry()
	cfg := &config.MetricsConfig{Enabled: enabled}
	return NewCollector(cfg, registry), registry
}

func TestNewCollector_Defaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	NewCollector(cfg, nil)

	if cfg.Namespace != config.DefaultMetricsNamespace {
		t.Errorf("Expected namespace %s, got %s", config.DefaultMetricsNamespace, cfg.Namespace)
	}
	if cfg.Subsystem != config.DefaultMetricsSubsystem {
		t.Errorf("Expected subsystem %s, got %s", config.DefaultMetricsSubsystem, cfg.Subsystem)
	}
	if len(cfg.DurationBuckets) == 0 {
		t.Error("Expected default duration buckets")
	}
}

func TestCollector_RecordSweep(t *testing.T) {
	collector, _ := newTestCollector(t, true)
	cutoff := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)

	collector.RecordSweep(StatusSuccess, 3, 3, cutoff, 200*time.Millisecond)
	collector.RecordSweep(StatusEmpty, 0, 0, cutoff, 10*time.Millisecond)
	collector.RecordSweep(StatusError, 7, 0, cutoff, time.Second)

	sm := collector.sweepMetrics

	if got := testutil.ToFloat64(sm.runsTotal.WithLabelValues(StatusSuccess)); got != 1 {
		t.Errorf("Expected 1 success run, got %v", got)
	}
	if got := testutil.ToFloat64(sm.runsTotal.WithLabelValues(StatusEmpty)); got != 1 {
		t.Errorf("Expected 1 empty run, got %v", got)
	}
	if got := testutil.ToFloat64(sm.runsTotal.WithLabelValues(StatusError)); got != 1 {
		t.Errorf("Expected 1 error run, got %v", got)
	}
	if got := testutil.ToFloat64(sm.deletedTotal); got != 3 {
		t.Errorf("Expected 3 deleted records, got %v", got)
	}
	if got := testutil.ToFloat64(sm.matched); got != 7 {
		t.Errorf("Expected matched gauge 7 from the last run, got %v", got)
	}
	if got := testutil.ToFloat64(sm.cutoffUnixTime); got != float64(cutoff.Unix()) {
		t.Errorf("Expected cutoff %d, got %v", cutoff.Unix(), got)
	}
	if got := testutil.ToFloat64(sm.lastSuccess); got == 0 {
		t.Error("Expected last success timestamp to be set")
	}
	if got := testutil.CollectAndCount(sm.duration); got != 1 {
		t.Errorf("Expected 1 duration histogram, got %d", got)
	}
}

func TestSweepMetrics_ErrorDoesNotTouchLastSuccess(t *testing.T) {
	collector, _ := newTestCollector(t, true)

	collector.RecordSweep(StatusError, 1, 0, time.Now(), time.Millisecond)

	if got := testutil.ToFloat64(collector.sweepMetrics.lastSuccess); got != 0 {
		t.Errorf("Expected last success to stay 0 after a failed run, got %v", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	collector, _ := newTestCollector(t, false)

	collector.RecordSweep(StatusSuccess, 5, 5, time.Now(), time.Second)

	if got := testutil.ToFloat64(collector.sweepMetrics.deletedTotal); got != 0 {
		t.Errorf("Expected disabled collector to record nothing, got %v", got)
	}
}

func TestCollector_NilSafe(t *testing.T) {
	var collector *Collector
	collector.RecordSweep(StatusSuccess, 1, 1, time.Now(), time.Second)
}

func TestCollector_RuntimeMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewCollector(&config.MetricsConfig{Enabled: true, RuntimeMetrics: true}, registry)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather() failed: %v", err)
	}

	found := false
	for _, mf := range families {
		if strings.HasPrefix(mf.GetName(), "go_") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected Go runtime metrics to be registered")
	}
}

func TestCollector_Handler(t *testing.T) {
	collector, _ := newTestCollector(t, true)
	collector.RecordSweep(StatusSuccess, 2, 2, time.Now(), time.Second)

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		`lgpd_sweeper_runs_total{status="success"} 1`,
		"lgpd_sweeper_records_deleted_total 2",
		"lgpd_sweeper_run_duration_seconds_bucket",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected %q in metrics output", want)
		}
	}
}
