package config

import "time"

// Retention policy. These are deliberately not configurable.
const (
	// RetentionYears is the number of calendar years a compliance log is kept.
	RetentionYears = 5

	// ScheduleInterval is the fixed interval between scheduled sweeps.
	ScheduleInterval = 24 * time.Hour
)

// Default values for configuration fields.
const (
	// Store defaults
	DefaultStoreBackend            = "firestore"
	DefaultFirestoreCollection     = "lgpd_logs"
	DefaultFirestoreTimestampField = "data_hora"
	DefaultSQLitePath              = "data/lgpd_logs.db"
	DefaultSQLiteDriver            = "sqlite3"
	DefaultSQLiteTable             = "lgpd_logs"
	DefaultSQLiteMaxOpenConns      = 10
	DefaultSQLiteMaxIdleConns      = 5
	DefaultSQLiteWALMode           = true
	DefaultSQLiteBusyTimeout       = 5 * time.Second

	// Sweeper defaults
	DefaultSweeperRunOnStart = true
	DefaultSweeperTimeout    = 5 * time.Minute

	// Telemetry defaults
	DefaultListenAddress      = "127.0.0.1:9090"
	DefaultShutdownTimeout    = 10 * time.Second
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "json"
	DefaultMetricsEnabled     = true
	DefaultMetricsPath        = "/metrics"
	DefaultMetricsNamespace   = "lgpd"
	DefaultMetricsSubsystem   = "sweeper"
	DefaultRuntimeMetrics     = true
	DefaultHealthEnabled      = true
	DefaultLivenessPath       = "/health"
	DefaultReadinessPath      = "/ready"
	DefaultHealthCheckTimeout = 5 * time.Second

	// Tracing defaults
	DefaultTracingEndpoint    = "localhost:4317"
	DefaultTracingTimeout     = 10 * time.Second
	DefaultTracingServiceName = "lgpd-sweeper"
	DefaultTracingSampler     = "always"
	DefaultTracingSampleRatio = 1.0
)

// DefaultConfig returns a configuration with every field set to its default.
// LoadConfig decodes YAML on top of it, so boolean defaults of true survive
// sections the file leaves out.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: DefaultStoreBackend,
			Firestore: FirestoreConfig{
				Collection:     DefaultFirestoreCollection,
				TimestampField: DefaultFirestoreTimestampField,
			},
			SQLite: SQLiteConfig{
				Path:         DefaultSQLitePath,
				Driver:       DefaultSQLiteDriver,
				Table:        DefaultSQLiteTable,
				MaxOpenConns: DefaultSQLiteMaxOpenConns,
				MaxIdleConns: DefaultSQLiteMaxIdleConns,
				WALMode:      DefaultSQLiteWALMode,
				BusyTimeout:  DefaultSQLiteBusyTimeout,
			},
		},
		Sweeper: SweeperConfig{
			RunOnStart: DefaultSweeperRunOnStart,
			Timeout:    DefaultSweeperTimeout,
		},
		Telemetry: TelemetryConfig{
			ListenAddress:   DefaultListenAddress,
			ShutdownTimeout: DefaultShutdownTimeout,
			Logging: LoggingConfig{
				Level:  DefaultLoggingLevel,
				Format: DefaultLoggingFormat,
			},
			Metrics: MetricsConfig{
				Enabled:        DefaultMetricsEnabled,
				Path:           DefaultMetricsPath,
				Namespace:      DefaultMetricsNamespace,
				Subsystem:      DefaultMetricsSubsystem,
				RuntimeMetrics: DefaultRuntimeMetrics,
			},
			Health: HealthConfig{
				Enabled:       DefaultHealthEnabled,
				LivenessPath:  DefaultLivenessPath,
				ReadinessPath: DefaultReadinessPath,
				CheckTimeout:  DefaultHealthCheckTimeout,
			},
			Tracing: TracingConfig{
				Endpoint:    DefaultTracingEndpoint,
				Timeout:     DefaultTracingTimeout,
				ServiceName: DefaultTracingServiceName,
				Sampler:     DefaultTracingSampler,
				SampleRatio: DefaultTracingSampleRatio,
			},
		},
	}
}

// ApplyDefaults fills zero-valued string, numeric and duration fields.
// Booleans are left alone: false is indistinguishable from unset.
func ApplyDefaults(cfg *Config) {
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = DefaultStoreBackend
	}

	// Firestore defaults
	if cfg.Store.Firestore.Collection == "" {
		cfg.Store.Firestore.Collection = DefaultFirestoreCollection
	}
	if cfg.Store.Firestore.TimestampField == "" {
		cfg.Store.Firestore.TimestampField = DefaultFirestoreTimestampField
	}

	// SQLite defaults
	if cfg.Store.SQLite.Path == "" {
		cfg.Store.SQLite.Path = DefaultSQLitePath
	}
	if cfg.Store.SQLite.Driver == "" {
		cfg.Store.SQLite.Driver = DefaultSQLiteDriver
	}
	if cfg.Store.SQLite.Table == "" {
		cfg.Store.SQLite.Table = DefaultSQLiteTable
	}
	if cfg.Store.SQLite.MaxOpenConns == 0 {
		cfg.Store.SQLite.MaxOpenConns = DefaultSQLiteMaxOpenConns
	}
	if cfg.Store.SQLite.MaxIdleConns == 0 {
		cfg.Store.SQLite.MaxIdleConns = DefaultSQLiteMaxIdleConns
	}
	if cfg.Store.SQLite.BusyTimeout == 0 {
		cfg.Store.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}

	// Telemetry defaults
	if cfg.Telemetry.ListenAddress == "" {
		cfg.Telemetry.ListenAddress = DefaultListenAddress
	}
	if cfg.Telemetry.ShutdownTimeout == 0 {
		cfg.Telemetry.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Telemetry.Health.LivenessPath == "" {
		cfg.Telemetry.Health.LivenessPath = DefaultLivenessPath
	}
	if cfg.Telemetry.Health.ReadinessPath == "" {
		cfg.Telemetry.Health.ReadinessPath = DefaultReadinessPath
	}
	if cfg.Telemetry.Health.CheckTimeout == 0 {
		cfg.Telemetry.Health.CheckTimeout = DefaultHealthCheckTimeout
	}

	// Tracing defaults
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Telemetry.Tracing.Timeout == 0 {
		cfg.Telemetry.Tracing.Timeout = DefaultTracingTimeout
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
}
