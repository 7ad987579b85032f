package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JunoAX/chorepoints-go/internal/engine"
	"github.com/JunoAX/chorepoints-go/internal/models"
	"github.com/JunoAX/chorepoints-go/internal/notify"
	"github.com/JunoAX/chorepoints-go/internal/repository"
)

type nullStore struct{}

func (nullStore) Load(ctx context.Context) (*models.Snapshot, error)    { return nil, nil }
func (nullStore) Save(ctx context.Context, snap *models.Snapshot) error { return nil }
func (nullStore) Close()                                                {}

type tickClock struct {
	t time.Time
}

func (c *tickClock) Now() time.Time { return c.t }

func newTestScheduler(start time.Time, resetHour int) (*Scheduler, *repository.State, *tickClock) {
	st := repository.New()
	sched, clock := schedulerOver(st, start, resetHour)
	return sched, st, clock
}

// schedulerOver builds a scheduler on top of an existing state, so tests can
// simulate a process restart by standing up a second scheduler on the same
// snapshot.
func schedulerOver(st *repository.State, start time.Time, resetHour int) (*Scheduler, *tickClock) {
	clock := &tickClock{t: start}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	queue := notify.NewQueue(&notify.LogSink{Logger: logger}, 64, logger)
	eng := engine.New(st, nullStore{}, queue, logger, engine.Config{}, engine.WithClock(clock.Now))
	sched := New(eng, Config{
		SweepInterval:  time.Minute,
		DailyResetHour: resetHour,
		Location:       time.UTC,
	}, logger).WithClock(clock.Now)
	return sched, clock
}

func seedKid(st *repository.State) *models.Kid {
	kid := &models.Kid{ID: "k1", Name: "Ada", Multiplier: 1}
	kid.EarnedToday = 10
	kid.EarnedWeekly = 20
	kid.EarnedMonthly = 30
	st.Snapshot().Kids["k1"] = kid
	return kid
}

func TestTickBeforeResetHourOnlySweeps(t *testing.T) {
	// Tuesday March 10 2026, 05:00, reset at 06:00.
	sched, st, _ := newTestScheduler(time.Date(2026, time.March, 10, 5, 0, 0, 0, time.UTC), 6)
	kid := seedKid(st)

	sched.Tick()

	assert.Equal(t, 10.0, kid.EarnedToday)
}

func TestTickRunsDailyResetOncePerDay(t *testing.T) {
	sched, st, clock := newTestScheduler(time.Date(2026, time.March, 10, 6, 30, 0, 0, time.UTC), 6)
	kid := seedKid(st)

	sched.Tick()
	assert.Equal(t, 0.0, kid.EarnedToday)
	// Tuesday: no weekly or monthly reset.
	assert.Equal(t, 20.0, kid.EarnedWeekly)
	assert.Equal(t, 30.0, kid.EarnedMonthly)

	// A second tick inside the same reset hour does nothing.
	kid.EarnedToday = 7
	clock.t = clock.t.Add(15 * time.Minute)
	sched.Tick()
	assert.Equal(t, 7.0, kid.EarnedToday)

	// Later the same day nothing fires either.
	clock.t = clock.t.Add(2 * time.Hour)
	sched.Tick()
	assert.Equal(t, 7.0, kid.EarnedToday)

	// The next day, back inside the reset hour, it fires once more.
	clock.t = time.Date(2026, time.March, 11, 6, 30, 0, 0, time.UTC)
	sched.Tick()
	assert.Equal(t, 0.0, kid.EarnedToday)
}

func TestTickAfterResetHourDoesNotFire(t *testing.T) {
	// First tick of a fresh process lands well past the reset hour. The
	// reset belongs to the boundary, so nothing is wiped.
	sched, st, _ := newTestScheduler(time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC), 7)
	kid := seedKid(st)
	kid.CompletedToday = 3
	kid.PendingRewards = []string{"r1"}

	sched.Tick()

	assert.Equal(t, 10.0, kid.EarnedToday)
	assert.Equal(t, 3, kid.CompletedToday)
	assert.Equal(t, []string{"r1"}, kid.PendingRewards)
}

func TestDailyResetGuardSurvivesRestart(t *testing.T) {
	st := repository.New()
	sched, _ := schedulerOver(st, time.Date(2026, time.March, 10, 6, 30, 0, 0, time.UTC), 6)
	kid := seedKid(st)

	sched.Tick()
	assert.Equal(t, 0.0, kid.EarnedToday)

	// Restart during the same reset hour: the snapshot remembers the day
	// already had its reset, so points earned since are kept.
	kid.EarnedToday = 5
	restarted, _ := schedulerOver(st, time.Date(2026, time.March, 10, 6, 45, 0, 0, time.UTC), 6)
	restarted.Tick()
	assert.Equal(t, 5.0, kid.EarnedToday)
}

func TestTickRunsWeeklyResetOnMonday(t *testing.T) {
	// Monday March 9 2026.
	sched, st, _ := newTestScheduler(time.Date(2026, time.March, 9, 6, 30, 0, 0, time.UTC), 6)
	kid := seedKid(st)

	sched.Tick()

	assert.Equal(t, 0.0, kid.EarnedWeekly)
	assert.Equal(t, 30.0, kid.EarnedMonthly)
}

func TestTickRunsMonthlyResetOnFirstOfMonth(t *testing.T) {
	// Wednesday April 1 2026.
	sched, st, _ := newTestScheduler(time.Date(2026, time.April, 1, 6, 30, 0, 0, time.UTC), 6)
	kid := seedKid(st)

	sched.Tick()

	assert.Equal(t, 0.0, kid.EarnedMonthly)
	assert.Equal(t, 20.0, kid.EarnedWeekly)
}

func TestStartAndStopAreIdempotent(t *testing.T) {
	sched, _, _ := newTestScheduler(time.Date(2026, time.March, 10, 6, 30, 0, 0, time.UTC), 6)

	ctx := context.Background()
	sched.Start(ctx)
	sched.Start(ctx)
	sched.Stop()
	sched.Stop()
}
