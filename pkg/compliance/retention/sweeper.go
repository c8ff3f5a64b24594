package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"agenda-horario/retention/pkg/compliance"
	"agenda-horario/retention/pkg/config"
	"agenda-horario/retention/pkg/telemetry/metrics"
)

// Config contains configuration for the retention sweeper.
type Config struct {
	// RetentionYears is the number of calendar years a record is kept.
	// 0 disables sweeping entirely.
	RetentionYears int

	// Timeout bounds a single run (query plus commit). 0 means no timeout.
	Timeout time.Duration
}

// DefaultConfig returns the default sweeper configuration.
func DefaultConfig() *Config {
	return &Config{
		RetentionYears: config.RetentionYears,
		Timeout:        config.DefaultSweeperTimeout,
	}
}

// Result describes the outcome of a single sweep.
type Result struct {
	// Cutoff is the computed boundary; records strictly older were eligible.
	Cutoff time.Time `json:"cutoff"`

	// Matched is the number of records older than Cutoff.
	Matched int `json:"matched"`

	// Deleted is the number of records removed by the batch.
	Deleted int `json:"deleted"`

	// DryRun is true when the result comes from Preview.
	DryRun bool `json:"dry_run"`

	// Duration is the wall time of the run.
	Duration time.Duration `json:"duration"`
}

// Option configures a Sweeper.
type Option func(*Sweeper)

// WithClock replaces time.Now as the source of the current time.
func WithClock(clock func() time.Time) Option {
	return func(s *Sweeper) {
		s.clock = clock
	}
}

// WithLogger sets the logger used for run logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sweeper) {
		s.logger = logger
	}
}

// WithMetrics records every run on the given collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(s *Sweeper) {
		s.metrics = collector
	}
}

// WithTracer sets the tracer used for the per-run span. Defaults to the
// global OpenTelemetry provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Sweeper) {
		s.tracer = tracer
	}
}

// Sweeper deletes compliance log records older than the retention window.
//
// A run is one query followed by at most one atomic batch delete. Nothing is
// retried inside a run; a failed run leaves the store unchanged and the next
// scheduled run starts over.
type Sweeper struct {
	store   compliance.Store
	config  *Config
	clock   func() time.Time
	logger  *slog.Logger
	metrics *metrics.Collector
	tracer  trace.Tracer
}

// NewSweeper creates a new sweeper over store.
func NewSweeper(store compliance.Store, cfg *Config, opts ...Option) *Sweeper {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	s := &Sweeper{
		store:  store,
		config: cfg,
		clock:  time.Now,
		logger: slog.Default().With("component", "compliance.retention"),
		tracer: otel.Tracer("agenda-horario/retention/pkg/compliance/retention"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run performs one sweep and returns how many records were deleted.
//
// The sequence is:
//  1. cutoff = now minus RetentionYears calendar years
//  2. query every record with a timestamp strictly before cutoff
//  3. if any matched, delete all of them in one atomic batch
//
// A matched set larger than the store's batch limit fails the run before any
// write. Failures are returned as *compliance.RetentionError.
func (s *Sweeper) Run(ctx context.Context) (Result, error) {
	ctx, span := s.tracer.Start(ctx, "lgpd.sweep",
		trace.WithAttributes(attribute.Int("lgpd.retention_years", s.config.RetentionYears)))
	defer span.End()

	result, err := s.run(ctx)

	span.SetAttributes(
		attribute.String("lgpd.cutoff", result.Cutoff.Format(time.RFC3339)),
		attribute.Int("lgpd.matched_count", result.Matched),
		attribute.Int("lgpd.deleted_count", result.Deleted),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	return result, err
}

func (s *Sweeper) run(ctx context.Context) (Result, error) {
	started := time.Now()
	now := s.clock()

	if s.config.RetentionYears <= 0 {
		s.logger.Debug("retention disabled, skipping sweep")
		return Result{Cutoff: now}, nil
	}

	result := Result{Cutoff: Cutoff(now, s.config.RetentionYears)}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	s.logger.Debug("starting retention sweep",
		"cutoff", result.Cutoff,
		"retention_years", s.config.RetentionYears,
	)

	records, err := s.store.QueryBefore(ctx, result.Cutoff)
	if err != nil {
		return s.fail(result, started, err)
	}
	result.Matched = len(records)

	if result.Matched > 0 {
		if limit := s.store.MaxBatchSize(); limit > 0 && result.Matched > limit {
			return s.fail(result, started,
				fmt.Errorf("%w: matched %d, limit %d", compliance.ErrBatchLimitExceeded, result.Matched, limit))
		}

		if err := s.store.DeleteBatch(ctx, compliance.RecordIDs(records)); err != nil {
			return s.fail(result, started, err)
		}
		result.Deleted = result.Matched
	}

	result.Duration = time.Since(started)

	status := metrics.StatusSuccess
	if result.Deleted == 0 {
		status = metrics.StatusEmpty
	}
	s.metrics.RecordSweep(status, result.Matched, result.Deleted, result.Cutoff, result.Duration)

	s.logger.Info("expired LGPD logs deleted",
		"deleted_count", result.Deleted,
		"cutoff", result.Cutoff,
		"duration", result.Duration,
	)

	return result, nil
}

// Preview computes the cutoff and counts matching records without deleting.
func (s *Sweeper) Preview(ctx context.Context) (Result, error) {
	started := time.Now()
	now := s.clock()

	result := Result{Cutoff: now, DryRun: true}
	if s.config.RetentionYears <= 0 {
		return result, nil
	}
	result.Cutoff = Cutoff(now, s.config.RetentionYears)

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	records, err := s.store.QueryBefore(ctx, result.Cutoff)
	if err != nil {
		return result, compliance.NewRetentionError(s.config.RetentionYears, result.Cutoff, err)
	}

	result.Matched = len(records)
	result.Duration = time.Since(started)

	s.logger.Info("dry run, no records deleted",
		"matched_count", result.Matched,
		"cutoff", result.Cutoff,
	)

	return result, nil
}

// fail records a failed run and wraps cause in a RetentionError.
func (s *Sweeper) fail(result Result, started time.Time, cause error) (Result, error) {
	result.Deleted = 0
	result.Duration = time.Since(started)

	s.metrics.RecordSweep(metrics.StatusError, result.Matched, 0, result.Cutoff, result.Duration)

	s.logger.Error("retention sweep failed",
		"error", cause,
		"cutoff", result.Cutoff,
		"matched_count", result.Matched,
	)

	return result, compliance.NewRetentionError(s.config.RetentionYears, result.Cutoff, cause)
}
