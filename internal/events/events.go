// Package events publishes catalog change notifications.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Action is the kind of change an Event reports.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event is the message body published for every successful write.
type Event struct {
	EntityType string    `json:"entityType"`
	Action     Action    `json:"action"`
	EntityID   uint      `json:"entityId"`
	Payload    any       `json:"payload,omitempty"`
	RequestID  string    `json:"requestId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// RoutingKey is "<entityType>.<action>", e.g. "library.created".
func (e Event) RoutingKey() string {
	return e.EntityType + "." + string(e.Action)
}

// Publisher delivers events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// notifierQueueSize bounds the events waiting for the publisher.
const notifierQueueSize = 256

type queuedEvent struct {
	ctx   context.Context
	event Event
}

// Notifier publishes events in the background, in the order they were
// submitted, without failing or delaying the caller. Errors are logged.
type Notifier struct {
	publisher Publisher
	timeout   time.Duration

	queue chan queuedEvent
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewNotifier wraps publisher and starts its delivery goroutine.
// A nil publisher behaves like Nop. Call Close to drain pending events.
func NewNotifier(publisher Publisher) *Notifier {
	if publisher == nil {
		publisher = Nop{}
	}
	n := &Notifier{
		publisher: publisher,
		timeout:   5 * time.Second,
		queue:     make(chan queuedEvent, notifierQueueSize),
		done:      make(chan struct{}),
	}
	go n.run()
	return n
}

// Notify queues event for publishing, stamping OccurredAt when unset.
// It never blocks: when the queue is full or the notifier is closed the
// event is dropped and logged.
func (n *Notifier) Notify(ctx context.Context, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		logDropped(event, "notifier closed")
		return
	}

	select {
	case n.queue <- queuedEvent{ctx: context.WithoutCancel(ctx), event: event}:
	default:
		logDropped(event, "queue full")
	}
}

// Close stops accepting events and waits until the queued ones have been
// handed to the publisher or ctx is done. It does not close the publisher.
func (n *Notifier) Close(ctx context.Context) error {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()

	select {
	case <-n.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *Notifier) run() {
	defer close(n.done)
	for item := range n.queue {
		n.publish(item.ctx, item.event)
	}
}

func (n *Notifier) publish(ctx context.Context, event Event) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.publisher.Publish(ctx, event); err != nil {
		log.Warn().Err(err).
			Str("routing_key", event.RoutingKey()).
			Uint("entity_id", event.EntityID).
			Msg("Failed to publish change event")
	}
}

func logDropped(event Event, reason string) {
	log.Warn().
		Str("routing_key", event.RoutingKey()).
		Uint("entity_id", event.EntityID).
		Str("reason", reason).
		Msg("Dropped change event")
}

func encode(event Event) ([]byte, error) {
	return json.Marshal(event)
}
