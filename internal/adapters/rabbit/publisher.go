package rabbit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sandeshlamsal/eventpasal/internal/domain"
	"github.com/sandeshlamsal/eventpasal/internal/observability"
)

const Exchange = "eventpasal.events"

const publishAttempts = 3

// Routing keys for booking lifecycle messages.
const (
	KeyBookingCreated   = "booking.created"
	KeyPaymentCompleted = "payment.completed"
	KeyEventCreated     = "event.created"
)

type Publisher struct {
	ch *amqp.Channel
}

func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	err = ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil)
	if err != nil {
		return nil, err
	}
	return &Publisher{ch: ch}, nil
}

// Publish delivers a message to the exchange, retrying transient channel
// errors a few times before giving up.
func (p *Publisher) Publish(ctx context.Context, key string, msg amqp.Publishing) error {
	var err error
	for attempt := 0; attempt < publishAttempts; attempt++ {
		if attempt > 0 {
			observability.RabbitPublishRetries.Inc()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
			}
		}
		if err = p.ch.PublishWithContext(ctx, Exchange, key, false, false, msg); err == nil {
			return nil
		}
	}
	return err
}

// PublishBooking serializes a booking lifecycle message under the given
// routing key.
func (p *Publisher) PublishBooking(ctx context.Context, key string, b domain.Booking) error {
	payload, err := json.Marshal(map[string]interface{}{
		"booking_id":     b.ID,
		"event_id":       b.EventID,
		"user_id":        b.UserID,
		"amount":         b.Amount,
		"tickets":        b.Tickets,
		"payment_method": b.Method,
		"payment_status": b.Status,
	})
	if err != nil {
		return err
	}
	return p.Publish(ctx, key, amqp.Publishing{
		MessageId:   uuid.New().String(),
		ContentType: "application/json",
		Body:        payload,
	})
}

// PublishEvent announces a newly listed event to downstream consumers.
func (p *Publisher) PublishEvent(ctx context.Context, ev domain.Event) error {
	payload, err := json.Marshal(map[string]interface{}{
		"event_id": ev.ID,
		"title":    ev.Title,
		"category": ev.Category,
		"location": ev.Location,
		"date":     ev.Date,
		"user_id":  ev.UserID,
	})
	if err != nil {
		return err
	}
	return p.Publish(ctx, KeyEventCreated, amqp.Publishing{
		MessageId:   uuid.New().String(),
		ContentType: "application/json",
		Body:        payload,
	})
}
