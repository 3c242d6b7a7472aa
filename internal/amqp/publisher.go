// Package amqp forwards change events to a RabbitMQ topic exchange.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/websocket"
)

const publishTimeout = 5 * time.Second

// Message is the body of every published event
type Message struct {
	UserID int64           `json:"userId"`
	Event  websocket.Event `json:"event"`
}

// channel is the subset of *amqp091.Channel the publisher uses
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher implements websocket.EventPublisher on top of an AMQP exchange.
// Events are routed by their type, e.g. "budget.created".
type Publisher struct {
	conn     *amqp091.Connection
	channel  channel
	exchange string
	mu       sync.Mutex
}

var _ websocket.EventPublisher = (*Publisher)(nil)

// NewPublisher dials url and declares a durable topic exchange
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := newPublisher(ch, exchange)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange string) (*Publisher, error) {
	err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{channel: ch, exchange: exchange}, nil
}

// Publish sends the event to the exchange. Failures are logged and dropped.
func (p *Publisher) Publish(userID int64, event websocket.Event) {
	if err := p.publish(context.Background(), userID, event); err != nil {
		log.Error().
			Err(err).
			Int64("user_id", userID).
			Str("event_type", event.Type).
			Str("exchange", p.exchange).
			Msg("Failed to publish event to AMQP")
	}
}

func (p *Publisher) publish(ctx context.Context, userID int64, event websocket.Event) error {
	body, err := json.Marshal(Message{UserID: userID, Event: event})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange, // exchange
		event.Type, // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    event.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	log.Debug().
		Int64("user_id", userID).
		Str("event_type", event.Type).
		Str("exchange", p.exchange).
		Msg("Published event to AMQP")
	return nil
}

// Close closes the channel and the connection
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
