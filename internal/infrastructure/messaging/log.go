// Package messaging holds the broker-less fallbacks used when RABBITMQ_URL is
// unset: events and mail requests are written to the log instead.
package messaging

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/inkwell/storefront/internal/core/domain"
)

type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Deliver(_ context.Context, event domain.Event) error {
	s.log.Info().
		Str("event_id", event.ID).
		Str("event_type", string(event.Type)).
		Str("event_key", event.Key).
		Interface("payload", event.Payload).
		Msg("event")
	return nil
}

// LogMailer never includes the token itself outside debug level.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendVerification(_ context.Context, to, token string) error {
	m.log.Info().Str("to", to).Msg("verification email queued")
	m.log.Debug().Str("to", to).Str("token", token).Msg("verification token")
	return nil
}

func (m *LogMailer) SendPasswordReset(_ context.Context, to, token string) error {
	m.log.Info().Str("to", to).Msg("password reset email queued")
	m.log.Debug().Str("to", to).Str("token", token).Msg("password reset token")
	return nil
}
