package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"deskbook/internal/pkg/config"
	"deskbook/internal/usecase/commands"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPPublisher pushes booking lifecycle events onto a durable queue per
// event kind. Delivery is best-effort: a broker outage degrades to warnings
// and never fails the booking flow that raised the event.
type AMQPPublisher struct {
	url string
}

func NewPublisher(cfg config.EventsConfig) commands.EventPublisher {
	if !cfg.Enabled {
		return NoopPublisher{}
	}
	return &AMQPPublisher{url: cfg.URL}
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev commands.Event) {
	if err := p.publish(ctx, ev); err != nil {
		slog.Warn("event publish failed",
			"kind", ev.Kind,
			"booking_id", ev.BookingID,
			"error", err.Error())
	}
}

func (p *AMQPPublisher) publish(ctx context.Context, ev commands.Event) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(ev.Kind, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		"",      // default exchange
		ev.Kind, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

// NoopPublisher is wired when the broker is disabled by config.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, commands.Event) {}
