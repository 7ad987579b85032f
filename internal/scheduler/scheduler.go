// Package scheduler drives the engine's periodic work: the overdue sweep on
// a minutes-scale tick and the daily, weekly and monthly counter resets at
// their calendar boundaries. All callbacks run through the engine's own
// mutex, so they are serialized with user-triggered actions.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/JunoAX/chorepoints-go/internal/engine"
)

// Config tunes the scheduler.
type Config struct {
	// SweepInterval is how often the overdue sweep runs.
	SweepInterval time.Duration
	// DailyResetHour is the local hour (0-23) at which the daily reset
	// fires. Weekly and monthly resets piggyback on the same boundary.
	DailyResetHour int
	// Location resolves calendar boundaries.
	Location *time.Location
}

// Scheduler owns the tick loop.
type Scheduler struct {
	eng    *engine.Engine
	cfg    Config
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// New creates a scheduler; zero config fields get defaults.
func New(eng *engine.Engine, cfg Config, logger *slog.Logger) *Scheduler {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Scheduler{
		eng:    eng,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the time source for tests.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// Start launches the tick loop. It runs until ctx is canceled or Stop is
// called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	s.logger.Info("scheduler started",
		"sweep_interval", s.cfg.SweepInterval,
		"daily_reset_hour", s.cfg.DailyResetHour,
	)

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop halts the loop and waits for the current tick to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick runs one scheduler pass: the overdue sweep always, plus whichever
// boundary resets are due. Resets fire only during the configured hour, and
// the last-reset day persists with the snapshot so a restart later in the
// day does not wipe counters a second time. Exposed so tests can drive it
// directly.
func (s *Scheduler) Tick() {
	s.eng.RunOverdueSweep()

	now := s.now().In(s.cfg.Location)
	if now.Hour() != s.cfg.DailyResetHour {
		return
	}
	if s.eng.LastDailyReset() == now.Format("2006-01-02") {
		return
	}

	s.eng.RunDailyReset()
	s.eng.ApplyCumulativeResets()
	if now.Weekday() == time.Monday {
		s.eng.RunWeeklyReset()
	}
	if now.Day() == 1 {
		s.eng.RunMonthlyReset()
	}
}
