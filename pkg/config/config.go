package config

import "time"

// Config is the root configuration structure for the retention sweeper.
type Config struct {
	// Store selects and configures the compliance log store.
	Store StoreConfig `yaml:"store"`

	// Sweeper contains run-level settings for the retention sweeper.
	Sweeper SweeperConfig `yaml:"sweeper"`

	// Telemetry contains logging, metrics and health endpoint configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// StoreConfig contains configuration for the compliance log store.
type StoreConfig struct {
	// Backend specifies the storage backend.
	// Options: "firestore", "sqlite", "memory"
	// Default: "firestore"
	Backend string `yaml:"backend"`

	// Firestore contains Firestore-specific configuration.
	Firestore FirestoreConfig `yaml:"firestore"`

	// SQLite contains SQLite-specific configuration.
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// FirestoreConfig contains Firestore-specific configuration.
type FirestoreConfig struct {
	// ProjectID is the Google Cloud project ID.
	// Empty means detect from the environment.
	ProjectID string `yaml:"project_id"`

	// CredentialsFile is an optional service account key file.
	// Empty means Application Default Credentials.
	CredentialsFile string `yaml:"credentials_file"`

	// Collection is the collection holding compliance logs.
	// Default: "lgpd_logs"
	Collection string `yaml:"collection"`

	// TimestampField is the document field holding the event time.
	// Default: "data_hora"
	TimestampField string `yaml:"timestamp_field"`
}

// SQLiteConfig contains SQLite-specific configuration.
type SQLiteConfig struct {
	// Path is the file path for the SQLite database.
	// Default: "data/lgpd_logs.db"
	Path string `yaml:"path"`

	// Driver selects the database/sql driver.
	// Options: "sqlite3" (cgo, mattn/go-sqlite3), "sqlite" (pure Go, modernc.org/sqlite)
	// Default: "sqlite3"
	Driver string `yaml:"driver"`

	// Table is the table holding compliance logs.
	// Default: "lgpd_logs"
	Table string `yaml:"table"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle database connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging mode.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// MaxBatchSize caps deletes per atomic batch. 0 means unlimited.
	// Default: 0
	MaxBatchSize int `yaml:"max_batch_size"`
}

// SweeperConfig contains run-level settings for the retention sweeper.
type SweeperConfig struct {
	// RunOnStart makes the daemon sweep once immediately at startup in
	// addition to the fixed interval.
	// Default: true
	RunOnStart bool `yaml:"run_on_start"`

	// Timeout bounds a single run (query plus commit). 0 means no timeout.
	// Default: 5m
	Timeout time.Duration `yaml:"timeout"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// ListenAddress is where the daemon serves metrics and health endpoints.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`

	// ShutdownTimeout bounds graceful shutdown of the telemetry server.
	// Default: 10s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Health contains health check configuration.
	Health HealthConfig `yaml:"health"`

	// Tracing contains OpenTelemetry tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "lgpd"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "sweeper"
	Subsystem string `yaml:"subsystem"`

	// DurationBuckets defines histogram buckets for run duration (seconds).
	DurationBuckets []float64 `yaml:"duration_buckets"`

	// RuntimeMetrics registers the Go runtime and process collectors.
	// Default: true
	RuntimeMetrics bool `yaml:"runtime_metrics"`
}

// HealthConfig contains health check endpoint configuration.
type HealthConfig struct {
	// Enabled controls whether health check endpoints are served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// LivenessPath is the path for the liveness probe endpoint.
	// Default: "/health"
	LivenessPath string `yaml:"liveness_path"`

	// ReadinessPath is the path for the readiness probe endpoint.
	// Default: "/ready"
	ReadinessPath string `yaml:"readiness_path"`

	// CheckTimeout is the timeout for individual component health checks.
	// Default: 5s
	CheckTimeout time.Duration `yaml:"check_timeout"`
}

// TracingConfig contains OpenTelemetry tracing configuration. Each sweep is
// exported as one span.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector address.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS to the collector.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each export call.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// ServiceName is reported as the service.name resource attribute.
	// Default: "lgpd-sweeper"
	ServiceName string `yaml:"service_name"`

	// Sampler is the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is used by the "ratio" sampler (0.0 to 1.0).
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`
}
