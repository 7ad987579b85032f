// Package engine implements the chore gamification rules engine: the chore
// lifecycle state machine, the points ledger, recurrence and overdue
// handling, and badge/achievement/challenge evaluation.
//
// All mutating operations are serialized through a single mutex per Engine
// instance; badge and achievement evaluation read across kids and chores, so
// finer-grained locking is not safe. Persistence and notification delivery
// happen outside the lock and never block a mutation.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JunoAX/chorepoints-go/internal/models"
	"github.com/JunoAX/chorepoints-go/internal/notify"
	"github.com/JunoAX/chorepoints-go/internal/repository"
	"github.com/JunoAX/chorepoints-go/internal/store"
)

// DefaultMultiplier applies when a kid holds no multiplier badge.
const DefaultMultiplier = 1.0

// Config tunes engine behavior.
type Config struct {
	// OverdueCooldown is the minimum gap between repeat overdue
	// notifications for the same kid and chore.
	OverdueCooldown time.Duration
}

// Engine owns the in-memory state and applies every rule in the system.
type Engine struct {
	mu     sync.Mutex
	st     *repository.State
	store  store.Store
	queue  *notify.Queue
	logger *slog.Logger
	cfg    Config
	now    func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock injects the time source, used by tests to pin calendar
// arithmetic.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine over the given state.
func New(st *repository.State, s store.Store, q *notify.Queue, logger *slog.Logger, cfg Config, opts ...Option) *Engine {
	if cfg.OverdueCooldown <= 0 {
		cfg.OverdueCooldown = 24 * time.Hour
	}
	e := &Engine{
		st:     st,
		store:  s,
		queue:  q,
		logger: logger,
		cfg:    cfg,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State exposes the arena for read-only callers (handlers listing entities).
// Callers must hold the engine lock via View.
func (e *Engine) State() *repository.State { return e.st }

// View runs fn with the engine lock held, for consistent reads.
func (e *Engine) View(fn func(st *repository.State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.st)
}

// persist snapshots the state and saves it on a background goroutine.
// Called with the engine lock held; durability is best-effort.
func (e *Engine) persist() {
	snap, err := e.st.Clone()
	if err != nil {
		e.logger.Error("snapshot clone failed", "error", err)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.store.Save(ctx, snap); err != nil {
			e.logger.Error("snapshot save failed", "error", err)
		}
	}()
}

// notifyKid enqueues a kid notification if the kid has notifications on.
func (e *Engine) notifyKid(kid *models.Kid, title, message string, actions ...notify.Action) {
	if !kid.NotifyEnabled {
		return
	}
	e.queue.Enqueue(notify.Event{
		ID:      uuid.New().String(),
		KidID:   kid.ID,
		Title:   title,
		Message: message,
		Actions: actions,
	})
}

// notifyParents enqueues a parent notification and returns its correlation
// id so pending approvals can reference it.
func (e *Engine) notifyParents(kidID, title, message string, actions ...notify.Action) string {
	id := uuid.New().String()
	e.queue.Enqueue(notify.Event{
		ID:        id,
		ToParents: true,
		KidID:     kidID,
		Title:     title,
		Message:   message,
		Actions:   actions,
	})
	return id
}

// today returns the engine clock's current calendar day.
func (e *Engine) today() string {
	return e.now().Format(models.DateLayout)
}
