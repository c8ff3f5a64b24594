package retention

import (
	"context"
	"testing"
	"time"

	"agenda-horario/retention/pkg/compliance/storage"
	"agenda-horario/retention/pkg/config"
)

func TestScheduler_Start(t *testing.T) {
	tests := []struct {
		name        string
		interval    time.Duration
		wantRunning bool
		wantError   bool
	}{
		{
			name:        "daily interval",
			interval:    config.ScheduleInterval,
			wantRunning: true,
		},
		{
			name:        "hourly interval",
			interval:    time.Hour,
			wantRunning: true,
		},
		{
			name:        "sub-second interval",
			interval:    500 * time.Millisecond,
			wantRunning: false,
			wantError:   true,
		},
		{
			name:        "zero interval",
			interval:    0,
			wantRunning: false,
			wantError:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sweeper := newTestSweeper(storage.NewMemoryStore())
			scheduler := NewScheduler(sweeper, tt.interval, false)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			err := scheduler.Start(ctx)
			if (err != nil) != tt.wantError {
				t.Errorf("Start() error = %v, wantError %v", err, tt.wantError)
			}

			if scheduler.IsRunning() != tt.wantRunning {
				t.Errorf("IsRunning() = %v, want %v", scheduler.IsRunning(), tt.wantRunning)
			}

			if tt.wantRunning {
				next := scheduler.NextRun()
				if next == nil {
					t.Fatal("NextRun() returned nil for running scheduler")
				}
				until := time.Until(*next)
				if until <= 0 || until > tt.interval {
					t.Errorf("Expected next run within %s, got %s", tt.interval, until)
				}
			}

			scheduler.Stop()
		})
	}
}

func TestScheduler_RunOnStart(t *testing.T) {
	store := storage.NewMemoryStore()
	seed(t, store, "old", time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC))
	seed(t, store, "new", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))

	scheduler := NewScheduler(newTestSweeper(store), config.ScheduleInterval, true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	defer scheduler.Stop()

	deadline := time.Now().Add(5 * time.Second)
	for store.GetByID("old") != nil {
		if time.Now().After(deadline) {
			t.Fatal("Timed out waiting for the startup sweep")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if store.GetByID("new") == nil {
		t.Error("Record new should have been kept")
	}

	next := scheduler.NextRun()
	if next == nil {
		t.Fatal("NextRun() returned nil after the startup sweep")
	}
	if time.Until(*next) < config.ScheduleInterval-time.Minute {
		t.Errorf("Expected next run about %s away, got %s", config.ScheduleInterval, time.Until(*next))
	}
}

func TestScheduler_NoRunOnStart(t *testing.T) {
	store := storage.NewMemoryStore()
	seed(t, store, "old", time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC))

	scheduler := NewScheduler(newTestSweeper(store), config.ScheduleInterval, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	time.Sleep(100 * time.Millisecond)
	scheduler.Stop()

	if store.GetByID("old") == nil {
		t.Error("No sweep should run before the first tick")
	}
}

func TestScheduler_Stop(t *testing.T) {
	scheduler := NewScheduler(newTestSweeper(storage.NewMemoryStore()), config.ScheduleInterval, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !scheduler.IsRunning() {
		t.Fatal("Scheduler should be running after Start()")
	}

	scheduler.Stop()

	if scheduler.IsRunning() {
		t.Error("Scheduler should not be running after Stop()")
	}
	if scheduler.NextRun() != nil {
		t.Error("NextRun() should be nil after Stop()")
	}

	// Stopping twice is harmless
	scheduler.Stop()

	// Restart after stop
	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Start() after Stop() failed: %v", err)
	}
	if !scheduler.IsRunning() {
		t.Error("Scheduler should be running after restart")
	}
	scheduler.Stop()
}

func TestScheduler_StopReleasesContextWatcher(t *testing.T) {
	scheduler := NewScheduler(newTestSweeper(storage.NewMemoryStore()), config.ScheduleInterval, false)

	// The context outlives every Start/Stop cycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for i := 0; i < 3; i++ {
		if err := scheduler.Start(ctx); err != nil {
			t.Fatalf("Start() #%d failed: %v", i, err)
		}
		done := scheduler.watchDone

		scheduler.Stop()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("Context watcher #%d still running after Stop()", i)
		}
	}
}

func TestScheduler_ContextCancellation(t *testing.T) {
	scheduler := NewScheduler(newTestSweeper(storage.NewMemoryStore()), config.ScheduleInterval, false)

	ctx, cancel := context.WithCancel(context.Background())
	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for scheduler.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("Scheduler should stop when its context is cancelled")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestScheduler_StartTwice(t *testing.T) {
	scheduler := NewScheduler(newTestSweeper(storage.NewMemoryStore()), config.ScheduleInterval, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("first Start() failed: %v", err)
	}
	defer scheduler.Stop()

	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("second Start() failed: %v", err)
	}
	if n := len(scheduler.cron.Entries()); n != 1 {
		t.Errorf("Expected 1 cron entry, got %d", n)
	}
}

func TestOnceSchedule(t *testing.T) {
	s := &onceSchedule{}
	now := time.Now()

	if got := s.Next(now); !got.Equal(now) {
		t.Errorf("Expected first Next() to return %s, got %s", now, got)
	}
	if got := s.Next(now); !got.IsZero() {
		t.Errorf("Expected second Next() to return zero time, got %s", got)
	}
}
