// Package logging builds the process-wide structured logger.
//
// Components obtain their logger from slog.Default() tagged with a component
// name, so the entry point only needs to install the configured handler once:
//
//	logger, err := logging.Setup(logging.FromConfig(cfg.Telemetry.Logging))
//	if err != nil {
//	    return err
//	}
//	logger.Info("sweeper starting")
//
// Formats:
//   - json: one JSON object per line, for log aggregation
//   - text: key=value pairs
//   - console: key=value pairs with a short HH:MM:SS.mmm timestamp
//
// Record payloads are never logged; only identifiers, counts and the cutoff
// appear in sweep output.
package logging
