package rabbitmq

import (
	"context"

	"github.com/google/uuid"
)

const (
	routingMailVerification  = "mail.verification"
	routingMailPasswordReset = "mail.password_reset"
)

// MailRequest is what the mail worker consumes; it renders and sends the
// actual message.
type MailRequest struct {
	To    string `json:"to"`
	Token string `json:"token"`
}

// Mailer hands account emails to the mail worker through the broker.
type Mailer struct {
	broker *Broker
}

func NewMailer(b *Broker) *Mailer {
	return &Mailer{broker: b}
}

func (m *Mailer) SendVerification(ctx context.Context, to, token string) error {
	return m.broker.PublishJSON(ctx, routingMailVerification, uuid.NewString(), MailRequest{To: to, Token: token})
}

func (m *Mailer) SendPasswordReset(ctx context.Context, to, token string) error {
	return m.broker.PublishJSON(ctx, routingMailPasswordReset, uuid.NewString(), MailRequest{To: to, Token: token})
}
