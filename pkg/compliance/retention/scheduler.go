package retention

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler triggers the sweeper on a fixed interval.
type Scheduler struct {
	sweeper    *Sweeper
	interval   time.Duration
	runOnStart bool

	cron    *cron.Cron
	entryID cron.EntryID
	mu      sync.Mutex
	logger  *slog.Logger
	running bool

	// stop is closed by Stop; watchDone is closed when the context watcher exits.
	stop      chan struct{}
	watchDone chan struct{}
}

// NewScheduler creates a scheduler that runs sweeper every interval.
// With runOnStart set, one additional sweep fires as soon as Start is called.
func NewScheduler(sweeper *Sweeper, interval time.Duration, runOnStart bool) *Scheduler {
	return &Scheduler{
		sweeper:    sweeper,
		interval:   interval,
		runOnStart: runOnStart,
		logger:     slog.Default().With("component", "compliance.scheduler"),
	}
}

// Start begins scheduled sweeping. The scheduler stops when ctx is cancelled
// or Stop is called. Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	// cron.Every truncates to whole seconds
	if s.interval < time.Second {
		return fmt.Errorf("invalid schedule interval %s: must be at least 1s", s.interval)
	}

	cl := cronLogger{logger: s.logger}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl)),
	)

	var entryID cron.EntryID
	job := cron.FuncJob(func() {
		s.runSweep(ctx, c, entryID)
	})

	entryID = c.Schedule(cron.Every(s.interval), job)
	if s.runOnStart {
		c.Schedule(&onceSchedule{}, job)
	}

	s.cron = c
	s.entryID = entryID
	s.running = true
	s.stop = make(chan struct{})
	s.watchDone = make(chan struct{})
	c.Start()

	s.logger.Info("retention scheduler started",
		"interval", s.interval,
		"run_on_start", s.runOnStart,
		"retention_years", s.sweeper.config.RetentionYears,
	)

	go func(stop, done chan struct{}) {
		defer close(done)
		select {
		case <-ctx.Done():
			s.Stop()
		case <-stop:
		}
	}(s.stop, s.watchDone)

	return nil
}

// runSweep executes one scheduled sweep. Errors are logged by the sweeper.
func (s *Scheduler) runSweep(ctx context.Context, c *cron.Cron, id cron.EntryID) {
	if ctx.Err() != nil {
		return
	}

	if _, err := s.sweeper.Run(ctx); err != nil {
		s.logger.Warn("scheduled sweep failed, retrying at next tick",
			"next_run", c.Entry(id).Next,
		)
	}
}

// Stop stops the scheduler and waits for a running sweep to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		close(s.stop)
		s.running = false
		s.logger.Info("retention scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next interval-driven sweep time, or nil when the
// scheduler has not been started.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.cron == nil {
		return nil
	}

	next := s.cron.Entry(s.entryID).Next
	if next.IsZero() {
		return nil
	}
	return &next
}

// onceSchedule fires once at the first opportunity and never again.
type onceSchedule struct {
	fired bool
}

// Next implements cron.Schedule. A zero time tells cron not to run the entry.
func (o *onceSchedule) Next(t time.Time) time.Time {
	if o.fired {
		return time.Time{}
	}
	o.fired = true
	return t
}

// cronLogger adapts slog to cron.Logger. Cron's routine chatter goes to Debug.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
