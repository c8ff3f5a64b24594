// Package tracing exports sweep spans to an OpenTelemetry collector.
//
// Tracing is off by default. When enabled, New installs a global tracer
// provider with an OTLP gRPC exporter, a parent-based sampler and the W3C
// trace context propagator:
//
//	telemetry:
//	  tracing:
//	    enabled: true
//	    endpoint: otel-collector:4317
//	    insecure: true
//	    sampler: ratio
//	    sample_ratio: 0.5
//
// The retention sweeper creates one "lgpd.sweep" span per run through the
// global provider, so nothing else needs to hold a reference to the Tracer
// besides the entry point that shuts it down.
package tracing
