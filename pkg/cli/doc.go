/*
Package cli provides command-line helpers for the lgpd-sweeper command.

Output Formatting:

Command results are printed as text for operators or JSON for scripts:

	formatter, err := cli.NewFormatter("json")
	if err != nil {
		return err
	}
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()

Exit Codes:

ExitCode maps command errors to process exit codes so that an external
scheduler can tell a bad configuration (2) from a failed sweep (1).
*/
package cli
