// Package rabbitmq publishes domain events and mail requests to a topic
// exchange. Downstream consumers bind queues by routing key.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Broker owns one connection and one channel. amqp channels are not safe for
// concurrent publishing, so publishes are serialised.
type Broker struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	mu       sync.Mutex
}

// Dial connects to url and declares exchange as a durable topic exchange.
func Dial(url, exchange string) (*Broker, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}
	return &Broker{conn: conn, ch: ch, exchange: exchange}, nil
}

func (b *Broker) Close() {
	if b.ch != nil {
		_ = b.ch.Close()
	}
	if b.conn != nil {
		_ = b.conn.Close()
	}
}

// Healthy reports whether the connection is still open.
func (b *Broker) Healthy() bool {
	return b.conn != nil && !b.conn.IsClosed()
}

// PublishJSON marshals v and publishes it persistently under routingKey.
func (b *Broker) PublishJSON(ctx context.Context, routingKey, messageID string, v any) error {
	msg, err := toPublishing(messageID, time.Now().UTC(), v)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.ch.PublishWithContext(ctx, b.exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq publish %s: %w", routingKey, err)
	}
	return nil
}

func toPublishing(messageID string, ts time.Time, v any) (amqp.Publishing, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("encode message: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Timestamp:    ts,
		Body:         body,
	}, nil
}
