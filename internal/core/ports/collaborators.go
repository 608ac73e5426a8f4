package ports

import (
	"context"

	"github.com/inkwell/storefront/internal/core/domain"
)

// RateLimiter answers whether another attempt keyed by key is allowed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Mailer delivers account emails.
type Mailer interface {
	SendVerification(ctx context.Context, to, token string) error
	SendPasswordReset(ctx context.Context, to, token string) error
}

// EventPublisher accepts events for asynchronous delivery. It never blocks
// the caller.
type EventPublisher interface {
	Publish(event domain.Event)
}

// EventSink delivers a single event to its destination.
type EventSink interface {
	Deliver(ctx context.Context, event domain.Event) error
}
