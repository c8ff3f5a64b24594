package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// envPrefix is prepended to every environment variable override.
const envPrefix = "LGPD_SWEEPER_"

// LoadConfig loads configuration from a YAML file at the specified path.
// The file is decoded on top of DefaultConfig, remaining zero values are
// defaulted, and the result is validated.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides (LGPD_SWEEPER_SECTION_FIELD). Environment
// variables take precedence over the file.
//
// An empty path skips the file and starts from DefaultConfig.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		cfg = DefaultConfig()
	} else {
		var err error
		cfg, err = LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Malformed numeric, boolean and duration values are ignored.
func applyEnvOverrides(cfg *Config) {
	// Store overrides
	setString(&cfg.Store.Backend, "STORE_BACKEND")
	setString(&cfg.Store.Firestore.ProjectID, "STORE_FIRESTORE_PROJECT_ID")
	setString(&cfg.Store.Firestore.CredentialsFile, "STORE_FIRESTORE_CREDENTIALS_FILE")
	setString(&cfg.Store.Firestore.Collection, "STORE_FIRESTORE_COLLECTION")
	setString(&cfg.Store.Firestore.TimestampField, "STORE_FIRESTORE_TIMESTAMP_FIELD")
	setString(&cfg.Store.SQLite.Path, "STORE_SQLITE_PATH")
	setString(&cfg.Store.SQLite.Driver, "STORE_SQLITE_DRIVER")
	setInt(&cfg.Store.SQLite.MaxBatchSize, "STORE_SQLITE_MAX_BATCH_SIZE")
	setBool(&cfg.Store.SQLite.WALMode, "STORE_SQLITE_WAL_MODE")

	// Sweeper overrides
	setBool(&cfg.Sweeper.RunOnStart, "SWEEPER_RUN_ON_START")
	setDuration(&cfg.Sweeper.Timeout, "SWEEPER_TIMEOUT")

	// Telemetry overrides
	setString(&cfg.Telemetry.ListenAddress, "TELEMETRY_LISTEN_ADDRESS")
	setString(&cfg.Telemetry.Logging.Level, "TELEMETRY_LOGGING_LEVEL")
	setString(&cfg.Telemetry.Logging.Format, "TELEMETRY_LOGGING_FORMAT")
	setBool(&cfg.Telemetry.Metrics.Enabled, "TELEMETRY_METRICS_ENABLED")
	setString(&cfg.Telemetry.Metrics.Path, "TELEMETRY_METRICS_PATH")
	setBool(&cfg.Telemetry.Health.Enabled, "TELEMETRY_HEALTH_ENABLED")
	setBool(&cfg.Telemetry.Tracing.Enabled, "TELEMETRY_TRACING_ENABLED")
	setString(&cfg.Telemetry.Tracing.Endpoint, "TELEMETRY_TRACING_ENDPOINT")
	setBool(&cfg.Telemetry.Tracing.Insecure, "TELEMETRY_TRACING_INSECURE")
	setString(&cfg.Telemetry.Tracing.Sampler, "TELEMETRY_TRACING_SAMPLER")
}

func setString(dst *string, key string) {
	if val := os.Getenv(envPrefix + key); val != "" {
		*dst = val
	}
}

func setInt(dst *int, key string) {
	if val := os.Getenv(envPrefix + key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

func setBool(dst *bool, key string) {
	if val := os.Getenv(envPrefix + key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if val := os.Getenv(envPrefix + key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}
