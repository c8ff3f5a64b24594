package main

import (
	"time"

	"github.com/spf13/cobra"

	"agenda-horario/retention/pkg/cli"
	"agenda-horario/retention/pkg/compliance/retention"
	"agenda-horario/retention/pkg/config"
)

var sweepFlags struct {
	dryRun bool
	format string
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete expired compliance logs once and exit",
	Long: `Run a single retention sweep and exit.

Intended for external schedulers (Kubernetes CronJob, Cloud Scheduler, cron):
the process exits non-zero when the store query or the batch delete fails,
and nothing is deleted in that case.

Examples:
  # Sweep using environment configuration
  LGPD_SWEEPER_STORE_BACKEND=firestore lgpd-sweeper sweep

  # Report how many records are past the retention window
  lgpd-sweeper sweep --dry-run

  # Machine-readable output
  lgpd-sweeper sweep --format json`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().BoolVar(&sweepFlags.dryRun, "dry-run", false, "count expired records without deleting them")
	sweepCmd.Flags().StringVarP(&sweepFlags.format, "format", "f", "text", "output format (text, json)")
}

// sweepReport is the printed outcome of a sweep.
type sweepReport struct {
	Backend        string    `json:"backend"`
	RetentionYears int       `json:"retention_years"`
	Cutoff         time.Time `json:"cutoff"`
	Matched        int       `json:"matched"`
	Deleted        int       `json:"deleted"`
	DryRun         bool      `json:"dry_run"`
	DurationMs     int64     `json:"duration_ms"`
}

func newSweepReport(backend string, result retention.Result) sweepReport {
	return sweepReport{
		Backend:        backend,
		RetentionYears: config.RetentionYears,
		Cutoff:         result.Cutoff,
		Matched:        result.Matched,
		Deleted:        result.Deleted,
		DryRun:         result.DryRun,
		DurationMs:     result.Duration.Milliseconds(),
	}
}

// TextFields implements cli.TextFielder.
func (r sweepReport) TextFields() []cli.Field {
	return []cli.Field{
		{Label: "Backend", Value: r.Backend},
		{Label: "Retention", Value: r.RetentionYears},
		{Label: "Cutoff", Value: r.Cutoff.Format(time.RFC3339)},
		{Label: "Matched records", Value: r.Matched},
		{Label: "Deleted records", Value: r.Deleted},
		{Label: "Dry run", Value: r.DryRun},
		{Label: "Duration", Value: time.Duration(r.DurationMs) * time.Millisecond},
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	formatter, err := cli.NewFormatter(sweepFlags.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if _, err := setupLogging(cfg); err != nil {
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
		return cli.NewCommandError("sweep", err)
	}
	defer store.Close()

	// One-shot runs have no scrape endpoint, so metrics stay off
	sweeper := newSweeper(store, cfg, nil)

	var result retention.Result
	if sweepFlags.dryRun {
		result, err = sweeper.Preview(ctx)
	} else {
		result, err = sweeper.Run(ctx)
	}
	if err != nil {
		return cli.NewCommandError("sweep", err)
	}

	return formatter.FormatTo(cmd.OutOrStdout(), newSweepReport(cfg.Store.Backend, result))
}
