package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"agenda-horario/retention/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "lgpd-sweeper",
	Short: "LGPD compliance log retention sweeper",
	Long: `lgpd-sweeper enforces the five-year retention window on LGPD compliance logs.

Each sweep computes cutoff = now - 5 calendar years, queries the log store for
records strictly older than the cutoff and deletes all of them in one atomic
batch. Supported stores: Cloud Firestore, SQLite and in-memory.

Configuration is read from an optional YAML file and LGPD_SWEEPER_* environment
variables. The retention period and the 24h schedule are fixed.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with a code derived from the error.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults and environment only when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}
