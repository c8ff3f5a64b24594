package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"agenda-horario/retention/pkg/cli"
	"agenda-horario/retention/pkg/compliance"
	"agenda-horario/retention/pkg/compliance/retention"
	"agenda-horario/retention/pkg/config"
	"agenda-horario/retention/pkg/telemetry/health"
	"agenda-horario/retention/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the sweeper daemon",
	Long: `Run the retention sweeper as a long-lived process.

A sweep runs every 24 hours (and once at startup unless sweeper.run_on_start
is false). Prometheus metrics, liveness and readiness endpoints are served on
telemetry.listen_address. SIGINT or SIGTERM stops the scheduler after the
running sweep finishes.

Examples:
  # Start with defaults and environment overrides
  lgpd-sweeper run

  # Start with a config file
  lgpd-sweeper run --config /etc/lgpd-sweeper/config.yaml

  # Validate config and store connectivity without starting
  lgpd-sweeper run --dry-run`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override telemetry listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config and store connectivity without starting")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if runFlags.listenAddress != "" {
		cfg.Telemetry.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError(cfgFile, err)
	}

	logger, err := setupLogging(cfg)
	if err != nil {
		return err
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	shutdownTracing, err := setupTracing(ctx, cfg)
	if err != nil {
		return err
	}
	defer shutdownTracing()

	store, err := openStore(ctx, &cfg.Store)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer store.Close()

	if runFlags.dryRun {
		if err := store.Ping(ctx); err != nil {
			return cli.NewCommandError("run", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Store %s reachable\n", cfg.Store.Backend)
		return nil
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	sweeper := newSweeper(store, cfg, collector)
	scheduler := retention.NewScheduler(sweeper, config.ScheduleInterval, cfg.Sweeper.RunOnStart)

	errChan := make(chan error, 1)
	var srv *http.Server
	if cfg.Telemetry.Metrics.Enabled || cfg.Telemetry.Health.Enabled {
		srv = newTelemetryServer(cfg, collector, store, scheduler)
		go func() {
			logger.Info("starting telemetry server", "address", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("telemetry server error: %w", err)
			}
		}()
	}

	if err := scheduler.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}

	startAttrs := []any{
		"version", Version,
		"backend", cfg.Store.Backend,
		"retention_years", config.RetentionYears,
		"interval", config.ScheduleInterval,
		"tracing", cfg.Telemetry.Tracing.Enabled,
	}
	if next := scheduler.NextRun(); next != nil {
		startAttrs = append(startAttrs, "next_run", *next)
	}
	logger.Info("lgpd sweeper started", startAttrs...)

	var runErr error
	select {
	case err := <-errChan:
		runErr = cli.NewCommandError("run", err)
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping")
	}

	scheduler.Stop()

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Telemetry.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry server shutdown failed", "error", err)
			if runErr == nil {
				runErr = cli.NewCommandError("run", err)
			}
		}
	}

	logger.Info("lgpd sweeper stopped")
	return runErr
}

// newTelemetryServer builds the HTTP server for metrics and probes.
func newTelemetryServer(cfg *config.Config, collector *metrics.Collector, store compliance.Store, scheduler *retention.Scheduler) *http.Server {
	mux := http.NewServeMux()

	if cfg.Telemetry.Metrics.Enabled {
		mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
	}

	if cfg.Telemetry.Health.Enabled {
		checker := health.New(cfg.Telemetry.Health.CheckTimeout)
		checker.RegisterCheck("store", health.PingCheck(store))
		checker.RegisterCheck("scheduler", func(ctx context.Context) error {
			if !scheduler.IsRunning() {
				return errors.New("scheduler not running")
			}
			return nil
		})
		checker.Register(mux, cfg.Telemetry.Health.LivenessPath, cfg.Telemetry.Health.ReadinessPath)
	}

	mux.HandleFunc("/version", health.VersionHandler(Version, GitCommit, BuildDate))

	return &http.Server{
		Addr:              cfg.Telemetry.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
	}
}
