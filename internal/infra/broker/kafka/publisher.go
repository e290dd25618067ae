package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"innkeeper/internal/domain/shared/events"
)

const (
	bookingTopic      = "booking-events"
	availabilityTopic = "availability-events"
)

// EventPublisher routes drained domain events to per-aggregate topics as JSON
// envelopes, keyed by aggregate id so one room's events stay ordered.
type EventPublisher struct {
	Producer    *Producer
	TopicPrefix string
}

type envelope struct {
	Name       string    `json:"name"`
	Aggregate  string    `json:"aggregate_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func (p EventPublisher) Publish(ctx context.Context, batch []events.DomainEvent) error {
	for _, event := range batch {
		payload, err := json.Marshal(envelope{
			Name:       event.EventName(),
			Aggregate:  event.AggregateID(),
			OccurredAt: event.OccurredAt(),
			Payload:    event,
		})
		if err != nil {
			return err
		}
		topic := p.TopicPrefix + topicFor(event.EventName())
		if err := p.Producer.Publish(ctx, topic, event.AggregateID(), payload, map[string]string{"event": event.EventName()}); err != nil {
			return err
		}
	}
	return nil
}

func topicFor(name string) string {
	if strings.HasPrefix(name, "room.") {
		return availabilityTopic
	}
	return bookingTopic
}
