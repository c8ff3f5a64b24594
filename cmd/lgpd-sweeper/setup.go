package main

import (
	"context"
	"fmt"
	"log/slog"

	"agenda-horario/retention/pkg/cli"
	"agenda-horario/retention/pkg/compliance"
	"agenda-horario/retention/pkg/compliance/retention"
	"agenda-horario/retention/pkg/compliance/storage"
	"agenda-horario/retention/pkg/config"
	"agenda-horario/retention/pkg/telemetry/logging"
	"agenda-horario/retention/pkg/telemetry/metrics"
	"agenda-horario/retention/pkg/telemetry/tracing"
)

// loadConfig reads the config file (if any) and environment overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError(cfgFile, err)
	}

	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	return cfg, nil
}

// setupLogging installs the configured logger as the slog default.
func setupLogging(cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.Setup(logging.FromConfig(cfg.Telemetry.Logging))
	if err != nil {
		return nil, cli.NewConfigError(cfgFile, err)
	}
	return logger, nil
}

// setupTracing installs the global tracer provider when tracing is enabled.
// The returned function flushes pending spans.
func setupTracing(ctx context.Context, cfg *config.Config) (func(), error) {
	tracer, err := tracing.New(ctx, &cfg.Telemetry.Tracing, tracing.WithVersion(Version))
	if err != nil {
		return nil, cli.NewConfigError(cfgFile, err)
	}

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Telemetry.ShutdownTimeout)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			slog.Default().Warn("tracer shutdown failed", "error", err)
		}
	}, nil
}

// openStore constructs the configured compliance log store.
func openStore(ctx context.Context, cfg *config.StoreConfig) (compliance.Store, error) {
	switch cfg.Backend {
	case "firestore":
		return storage.NewFirestoreStore(ctx, &storage.FirestoreConfig{
			ProjectID:       cfg.Firestore.ProjectID,
			CredentialsFile: cfg.Firestore.CredentialsFile,
			Collection:      cfg.Firestore.Collection,
			TimestampField:  cfg.Firestore.TimestampField,
		})
	case "sqlite":
		return storage.NewSQLiteStore(&storage.SQLiteConfig{
			Path:         cfg.SQLite.Path,
			Driver:       cfg.SQLite.Driver,
			Table:        cfg.SQLite.Table,
			MaxOpenConns: cfg.SQLite.MaxOpenConns,
			MaxIdleConns: cfg.SQLite.MaxIdleConns,
			WALMode:      cfg.SQLite.WALMode,
			BusyTimeout:  cfg.SQLite.BusyTimeout,
			MaxBatchSize: cfg.SQLite.MaxBatchSize,
		})
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Backend)
	}
}

// newSweeper wires the sweeper to its store and metrics.
func newSweeper(store compliance.Store, cfg *config.Config, collector *metrics.Collector) *retention.Sweeper {
	return retention.NewSweeper(store, &retention.Config{
		RetentionYears: config.RetentionYears,
		Timeout:        cfg.Sweeper.Timeout,
	}, retention.WithMetrics(collector))
}
