// Package telemetry groups the observability packages used by the sweeper.
//
// # Components
//
//   - logging: slog handler construction (json, text, console)
//   - metrics: Prometheus collector for sweep outcomes
//   - health: liveness and readiness probes
//   - tracing: OpenTelemetry span export for sweeps
//
// The entry point installs the logger with slog.SetDefault, optionally
// installs the global tracer provider, and hands the metrics collector to the
// sweeper. Health checks are only served by the long-running daemon.
//
// # Configuration
//
//	telemetry:
//	  listen_address: ":9090"
//	  logging:
//	    level: info
//	    format: json
//	  metrics:
//	    enabled: true
//	    path: /metrics
//	  health:
//	    enabled: true
//	  tracing:
//	    enabled: false
package telemetry
