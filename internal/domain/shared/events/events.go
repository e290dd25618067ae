package events

import (
	"context"
	"time"
)

// DomainEvent is emitted by aggregates when observable state changes.
type DomainEvent interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

// Publisher delivers drained domain events to whatever transport backs the
// deployment (Kafka, a logger in dev, nothing in tests).
type Publisher interface {
	Publish(ctx context.Context, events []DomainEvent) error
}

// NopPublisher discards events.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, events []DomainEvent) error { return nil }

// Recorder collects pending events; aggregates embed it.
type Recorder struct {
	pending []DomainEvent
}

func (r *Recorder) Record(event DomainEvent) {
	if event == nil {
		return
	}
	r.pending = append(r.pending, event)
}

// Drain returns the pending events and clears the buffer.
func (r *Recorder) Drain() []DomainEvent {
	out := r.pending
	r.pending = nil
	return out
}

func (r *Recorder) PendingEvents() []DomainEvent {
	out := make([]DomainEvent, len(r.pending))
	copy(out, r.pending)
	return out
}
