package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_DefaultConfig(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Errorf("Default configuration should be valid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{
			name:      "empty backend",
			modify:    func(c *Config) { c.Store.Backend = "" },
			wantField: "store.backend",
		},
		{
			name:      "unknown backend",
			modify:    func(c *Config) { c.Store.Backend = "mongodb" },
			wantField: "store.backend",
		},
		{
			name:      "firestore without collection",
			modify:    func(c *Config) { c.Store.Firestore.Collection = "" },
			wantField: "store.firestore.collection",
		},
		{
			name:      "firestore without timestamp field",
			modify:    func(c *Config) { c.Store.Firestore.TimestampField = "" },
			wantField: "store.firestore.timestamp_field",
		},
		{
			name: "sqlite without path",
			modify: func(c *Config) {
				c.Store.Backend = "sqlite"
				c.Store.SQLite.Path = ""
			},
			wantField: "store.sqlite.path",
		},
		{
			name: "sqlite unknown driver",
			modify: func(c *Config) {
				c.Store.Backend = "sqlite"
				c.Store.SQLite.Driver = "pgx"
			},
			wantField: "store.sqlite.driver",
		},
		{
			name: "sqlite unsafe table name",
			modify: func(c *Config) {
				c.Store.Backend = "sqlite"
				c.Store.SQLite.Table = "logs; DROP TABLE x"
			},
			wantField: "store.sqlite.table",
		},
		{
			name: "sqlite negative batch size",
			modify: func(c *Config) {
				c.Store.Backend = "sqlite"
				c.Store.SQLite.MaxBatchSize = -1
			},
			wantField: "store.sqlite.max_batch_size",
		},
		{
			name:      "negative sweeper timeout",
			modify:    func(c *Config) { c.Sweeper.Timeout = -1 },
			wantField: "sweeper.timeout",
		},
		{
			name:      "invalid logging level",
			modify:    func(c *Config) { c.Telemetry.Logging.Level = "trace" },
			wantField: "telemetry.logging.level",
		},
		{
			name:      "invalid logging format",
			modify:    func(c *Config) { c.Telemetry.Logging.Format = "xml" },
			wantField: "telemetry.logging.format",
		},
		{
			name:      "invalid listen address",
			modify:    func(c *Config) { c.Telemetry.ListenAddress = "9090" },
			wantField: "telemetry.listen_address",
		},
		{
			name:      "relative metrics path",
			modify:    func(c *Config) { c.Telemetry.Metrics.Path = "metrics" },
			wantField: "telemetry.metrics.path",
		},
		{
			name:      "relative liveness path",
			modify:    func(c *Config) { c.Telemetry.Health.LivenessPath = "health" },
			wantField: "telemetry.health.liveness_path",
		},
		{
			name: "same liveness and readiness path",
			modify: func(c *Config) {
				c.Telemetry.Health.ReadinessPath = c.Telemetry.Health.LivenessPath
			},
			wantField: "telemetry.health.readiness_path",
		},
		{
			name: "tracing unknown sampler",
			modify: func(c *Config) {
				c.Telemetry.Tracing.Enabled = true
				c.Telemetry.Tracing.Sampler = "sometimes"
			},
			wantField: "telemetry.tracing.sampler",
		},
		{
			name: "tracing ratio out of range",
			modify: func(c *Config) {
				c.Telemetry.Tracing.Enabled = true
				c.Telemetry.Tracing.Sampler = "ratio"
				c.Telemetry.Tracing.SampleRatio = 1.5
			},
			wantField: "telemetry.tracing.sample_ratio",
		},
		{
			name: "tracing without endpoint",
			modify: func(c *Config) {
				c.Telemetry.Tracing.Enabled = true
				c.Telemetry.Tracing.Endpoint = ""
			},
			wantField: "telemetry.tracing.endpoint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected ValidationError, got %T", err)
			}

			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected error for field %s, got %v", tt.wantField, verr.Errors)
			}
		})
	}
}

func TestValidate_ListenAddressIgnoredWhenServerDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Telemetry.Metrics.Enabled = false
	cfg.Telemetry.Health.Enabled = false
	cfg.Telemetry.ListenAddress = "not an address"

	if err := Validate(cfg); err != nil {
		t.Errorf("Expected no error with HTTP server disabled, got %v", err)
	}
}

func TestValidationError_Error(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "store.backend", Message: "backend is required"}}}
	if got := single.Error(); got != "configuration validation failed: store.backend: backend is required" {
		t.Errorf("Unexpected single error message: %q", got)
	}

	multi := ValidationError{Errors: []FieldError{
		{Field: "a", Message: "first"},
		{Field: "b", Message: "second"},
	}}
	msg := multi.Error()
	if !strings.Contains(msg, "2 errors") || !strings.Contains(msg, "a: first") || !strings.Contains(msg, "b: second") {
		t.Errorf("Unexpected multi error message: %q", msg)
	}
}

func TestValidate_TracingIgnoredWhenDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Telemetry.Tracing.Enabled = false
	cfg.Telemetry.Tracing.Sampler = "sometimes"

	if err := Validate(cfg); err != nil {
		t.Errorf("Expected disabled tracing to skip validation, got %v", err)
	}
}
