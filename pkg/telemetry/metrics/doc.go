// Package metrics provides Prometheus metrics for the retention sweeper.
//
// # Metrics
//
//	lgpd_sweeper_runs_total{status}              counter
//	lgpd_sweeper_records_deleted_total           counter
//	lgpd_sweeper_records_matched                 gauge
//	lgpd_sweeper_run_duration_seconds            histogram
//	lgpd_sweeper_last_success_timestamp_seconds  gauge
//	lgpd_sweeper_cutoff_timestamp_seconds        gauge
//
// "status" is one of "success" (records deleted), "empty" (nothing older than
// the cutoff) or "error" (query or commit failed).
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordSweep(metrics.StatusSuccess, 12, 12, cutoff, 340*time.Millisecond)
//
//	http.Handle("/metrics", collector.Handler())
//
// A staleness alert on last_success_timestamp_seconds is the usual way to
// notice a sweeper that keeps failing.
package metrics
