package rabbitmq

import (
	"context"

	"github.com/inkwell/storefront/internal/core/domain"
)

// EventSink delivers domain events with the event type as routing key.
type EventSink struct {
	broker *Broker
}

func NewEventSink(b *Broker) *EventSink {
	return &EventSink{broker: b}
}

func (s *EventSink) Deliver(ctx context.Context, event domain.Event) error {
	return s.broker.PublishJSON(ctx, string(event.Type), event.ID, event)
}
