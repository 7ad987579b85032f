package engine

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/JunoAX/chorepoints-go/internal/models"
	"github.com/JunoAX/chorepoints-go/internal/notify"
	"github.com/JunoAX/chorepoints-go/internal/repository"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	mu    sync.Mutex
	snap  *models.Snapshot
	saves int
}

func (m *memStore) Load(ctx context.Context) (*models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap, nil
}

func (m *memStore) Save(ctx context.Context, snap *models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap
	m.saves++
	return nil
}

func (m *memStore) Close() {}

// captureSink records delivered notifications.
type captureSink struct {
	mu     sync.Mutex
	events []notify.Event
}

func (s *captureSink) NotifyKid(ctx context.Context, ev notify.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *captureSink) NotifyParents(ctx context.Context, ev notify.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

// fakeClock is a controllable time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEngine builds an engine over empty state with a pinned clock.
func newTestEngine(start time.Time) (*Engine, *repository.State, *fakeClock) {
	clock := &fakeClock{t: start}
	st := repository.New()
	logger := testLogger()
	queue := notify.NewQueue(&captureSink{}, 256, logger)
	eng := New(st, &memStore{}, queue, logger, Config{}, WithClock(clock.Now))
	return eng, st, clock
}

func addKid(st *repository.State, id, name string) *models.Kid {
	kid := &models.Kid{ID: id, Name: name, Multiplier: DefaultMultiplier, NotifyEnabled: true}
	st.Snapshot().Kids[id] = kid
	return kid
}

func addChore(st *repository.State, id, name string, points float64, kidIDs ...string) *models.Chore {
	chore := &models.Chore{
		ID:            id,
		Name:          name,
		DefaultPoints: points,
		AssignedKids:  kidIDs,
		Frequency:     models.FrequencyDaily,
		State:         models.ChorePending,
	}
	st.Snapshot().Chores[id] = chore
	return chore
}

func addReward(st *repository.State, id, name string, cost float64) *models.Reward {
	reward := &models.Reward{ID: id, Name: name, Cost: cost}
	st.Snapshot().Rewards[id] = reward
	return reward
}

func addBadge(st *repository.State, b *models.Badge) *models.Badge {
	st.Snapshot().Badges[b.ID] = b
	return b
}

func ptr[T any](v T) *T { return &v }

var testStart = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
