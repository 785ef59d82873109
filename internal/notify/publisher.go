// Package notify delivers best-effort domain events to RabbitMQ.
// Emission never fails a caller: a broken broker is logged and ignored.
package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	exchangeName = "foodmart.events"
	publishTTL   = 5 * time.Second
)

// Emitter is the notification sink consumed by services.
type Emitter interface {
	Emit(eventType string, payload any)
}

// Publisher emits events to a topic exchange.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger
}

// NewPublisher connects to the broker and declares the exchange.
func NewPublisher(url string, logger *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, channel: ch, logger: logger}, nil
}

// Emit publishes the event with the type as routing key. Fire and
// forget: failures are logged, never returned.
func (p *Publisher) Emit(eventType string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("marshal event", zap.String("event", eventType), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTTL)
	defer cancel()

	err = p.channel.PublishWithContext(ctx, exchangeName, eventType, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now(),
		Body:        body,
	})
	if err != nil {
		p.logger.Error("publish event", zap.String("event", eventType), zap.Error(err))
	}
}

// Close shuts the channel and connection down.
func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// NopEmitter drops every event. Used when no broker is configured.
type NopEmitter struct{}

func (NopEmitter) Emit(string, any) {}
