// Package notify implements the outbound notification queue. Mutation paths
// enqueue events and never wait on delivery; a background worker drains the
// queue into a Sink. Delivery failure is logged and never propagates back to
// the originating mutation.
package notify

import (
	"context"
	"log/slog"
	"sync"
)

// Action is an opaque actionable button attached to a notification, resolved
// by an external action handler.
type Action struct {
	Type     string `json:"type"`
	KidID    string `json:"kid_id"`
	EntityID string `json:"entity_id"`
}

// Action types understood by the external handler.
const (
	ActionApproveChore     = "APPROVE_CHORE"
	ActionDisapproveChore  = "DISAPPROVE_CHORE"
	ActionApproveReward    = "APPROVE_REWARD"
	ActionDisapproveReward = "DISAPPROVE_REWARD"
	ActionRemind30         = "REMIND_30"
)

// Event is a single outbound notification.
type Event struct {
	ID        string
	ToParents bool
	KidID     string
	Title     string
	Message   string
	Actions   []Action
}

// Sink delivers notifications. The concrete transport lives outside this
// system; LogSink is the default stand-in.
type Sink interface {
	NotifyKid(ctx context.Context, ev Event) error
	NotifyParents(ctx context.Context, ev Event) error
}

// LogSink writes notifications to the log instead of a real transport.
type LogSink struct {
	Logger *slog.Logger
}

func (s *LogSink) NotifyKid(ctx context.Context, ev Event) error {
	s.Logger.Info("notify kid",
		"kid_id", ev.KidID,
		"title", ev.Title,
		"message", ev.Message,
		"actions", len(ev.Actions),
	)
	return nil
}

func (s *LogSink) NotifyParents(ctx context.Context, ev Event) error {
	s.Logger.Info("notify parents",
		"kid_id", ev.KidID,
		"title", ev.Title,
		"message", ev.Message,
		"actions", len(ev.Actions),
	)
	return nil
}

// Queue buffers events between the engine and the delivery worker.
type Queue struct {
	mu     sync.Mutex
	ch     chan Event
	sink   Sink
	logger *slog.Logger
	closed bool
	wg     sync.WaitGroup
}

// NewQueue creates a queue with the given buffer size.
func NewQueue(sink Sink, buffer int, logger *slog.Logger) *Queue {
	if buffer <= 0 {
		buffer = 64
	}
	return &Queue{
		ch:     make(chan Event, buffer),
		sink:   sink,
		logger: logger,
	}
}

// Enqueue adds an event without blocking. When the buffer is full the event
// is dropped and logged; notifications are best-effort.
func (q *Queue) Enqueue(ev Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	select {
	case q.ch <- ev:
	default:
		q.logger.Warn("notification queue full, dropping event",
			"kid_id", ev.KidID,
			"title", ev.Title,
		)
	}
}

// Start launches the delivery worker. It runs until ctx is canceled or
// Close is called.
func (q *Queue) Start(ctx context.Context) {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-q.ch:
				if !ok {
					return
				}
				q.deliver(ctx, ev)
			}
		}
	}()
}

// Close stops accepting events and waits for the worker to drain.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()
	q.wg.Wait()
}

func (q *Queue) deliver(ctx context.Context, ev Event) {
	var err error
	if ev.ToParents {
		err = q.sink.NotifyParents(ctx, ev)
	} else {
		err = q.sink.NotifyKid(ctx, ev)
	}
	if err != nil {
		q.logger.Error("notification delivery failed",
			"kid_id", ev.KidID,
			"title", ev.Title,
			"error", err,
		)
	}
}
