package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType doubles as the broker routing key.
type EventType string

const (
	EventSessionChanged          EventType = "session.changed"
	EventOrderCreated            EventType = "order.created"
	EventOrderStatusChanged      EventType = "order.status_changed"
	EventOrderPaymentChanged     EventType = "order.payment_changed"
	EventPrintOrderSubmitted     EventType = "print_order.submitted"
	EventPrintOrderStatusChanged EventType = "print_order.status_changed"
)

// Event is a fire-and-forget notification. Events sharing a Key are
// delivered in the order they were published.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

func NewEvent(t EventType, key string, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

type SessionChangedPayload struct {
	UserID string `json:"userId"`
	Reason string `json:"reason"`
}

type OrderEventPayload struct {
	OrderID       string        `json:"orderId"`
	OrderNumber   string        `json:"orderNumber"`
	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Total         float64       `json:"total"`
	Email         string        `json:"email,omitempty"`
}

type PrintOrderEventPayload struct {
	PrintOrderID  string      `json:"printOrderId"`
	Status        PrintStatus `json:"status"`
	EstimatedCost float64     `json:"estimatedCost"`
	FinalCost     *float64    `json:"finalCost,omitempty"`
}
