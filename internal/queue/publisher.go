package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/venturegrill/api/internal/models"
)

const (
	// ExchangeName is the topic exchange roast events are published to
	ExchangeName = "roast.events"
	// RoutingKeyRoastCreated marks newly stored roasts
	RoutingKeyRoastCreated = "roast.created"
)

// RoastCreatedEvent is the message emitted after a roast is stored.
// Downstream analytics consume it; the API never waits on them.
type RoastCreatedEvent struct {
	RoastID     uuid.UUID         `json:"roast_id"`
	StartupName string            `json:"startup_name"`
	RoastLevel  models.RoastLevel `json:"roast_level"`
	UserID      *uuid.UUID        `json:"user_id,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Publisher emits roast events. Implementations must be safe to call from
// concurrent request handlers.
type Publisher interface {
	PublishRoastCreated(ctx context.Context, event *RoastCreatedEvent) error
	Close() error
}

// RabbitMQPublisher implements Publisher over a durable topic exchange
type RabbitMQPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

var _ Publisher = (*RabbitMQPublisher)(nil)

// NewRabbitMQPublisher connects to RabbitMQ and declares the exchange
func NewRabbitMQPublisher(amqpURL string) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			_ = closeErr
		}
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			_ = closeErr
		}
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &RabbitMQPublisher{conn: conn, channel: ch}, nil
}

// PublishRoastCreated publishes one event. Callers treat errors as
// best-effort telemetry loss, never as a request failure.
func (p *RabbitMQPublisher) PublishRoastCreated(ctx context.Context, event *RoastCreatedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		ExchangeName,
		RoutingKeyRoastCreated,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    event.RoastID.String(),
			Timestamp:    event.CreatedAt,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Close closes the channel and connection
func (p *RabbitMQPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		_ = err
	}
	return p.conn.Close()
}
