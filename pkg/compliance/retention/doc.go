// Package retention deletes LGPD compliance log records once they are older
// than the retention window.
//
// # Sweep
//
// A sweep computes cutoff = now minus five calendar years, queries every
// record with a timestamp strictly before the cutoff and removes all of them
// in one atomic batch delete:
//
//	sweeper := retention.NewSweeper(store, retention.DefaultConfig(),
//	    retention.WithMetrics(collector),
//	)
//	result, err := sweeper.Run(ctx)
//	if err != nil {
//	    return err
//	}
//
// Exactly one completion line is logged per successful run:
//
//	level=INFO msg="expired LGPD logs deleted" component=compliance.retention deleted_count=1
//
// A record whose timestamp equals the cutoff is kept. When the matched set is
// larger than the store's atomic batch limit the run fails with
// compliance.ErrBatchLimitExceeded and nothing is deleted.
//
// # Cutoff
//
// Cutoff subtracts calendar years and keeps the month, day, clock time and
// location. February 29 maps to February 28 when the target year is not a
// leap year.
//
// # Scheduling
//
// Scheduler runs the sweeper every 24 hours using robfig/cron, optionally
// sweeping once immediately at start:
//
//	scheduler := retention.NewScheduler(sweeper, config.ScheduleInterval, true)
//	if err := scheduler.Start(ctx); err != nil {
//	    return err
//	}
//	defer scheduler.Stop()
//
// A failed run is logged and counted; the next tick tries again.
package retention
