package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	mongoadapter "github.com/sandeshlamsal/eventpasal/internal/adapters/mongo"
	"github.com/sandeshlamsal/eventpasal/internal/adapters/rabbit"
	"github.com/sandeshlamsal/eventpasal/internal/config"
	"github.com/sandeshlamsal/eventpasal/internal/domain"
	"github.com/sandeshlamsal/eventpasal/internal/observability"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const auditQueue = "eventpasal.audit.q"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	shutdownOtel, err := observability.SetupOTel(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to setup otel: %v", err)
	}
	defer shutdownOtel()

	logger := observability.NewLogger()

	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("failed to connect to mongo: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())
	audit := mongoadapter.NewAuditLogger(mongoClient.Database("eventpasal"), logger)

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer conn.Close()

	consumer, err := rabbit.NewConsumer(conn, auditQueue, "#")
	if err != nil {
		log.Fatalf("failed to create consumer: %v", err)
	}

	worker := NewAuditWorker(consumer, audit, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := worker.Run(ctx); err != nil {
			log.Fatalf("audit worker: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("Shutdown audit worker")
}

// AuditWorker drains lifecycle messages off the topic exchange into the
// audit trail. Messages that keep failing are requeued rather than dropped.
type AuditWorker struct {
	consumer *rabbit.Consumer
	audit    *mongoadapter.AuditLogger
	logger   observability.Logger
}

func NewAuditWorker(consumer *rabbit.Consumer, audit *mongoadapter.AuditLogger, logger observability.Logger) *AuditWorker {
	return &AuditWorker{consumer: consumer, audit: audit, logger: logger}
}

func (w *AuditWorker) Run(ctx context.Context) error {
	deliveries, err := w.consumer.Consume(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			if err := w.recordWithRetry(ctx, d); err != nil {
				w.logger.Error("failed to record audit entry after retries", err)
				d.Nack(false, true)
				continue
			}
			d.Ack(false)
		}
	}
}

func (w *AuditWorker) recordWithRetry(ctx context.Context, d amqp.Delivery) error {
	maxRetries := 3
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if err := w.record(ctx, d); err != nil {
			lastErr = err
			backoff := time.Duration(1<<i) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}

func (w *AuditWorker) record(ctx context.Context, d amqp.Delivery) error {
	if strings.HasPrefix(d.RoutingKey, "booking.") || strings.HasPrefix(d.RoutingKey, "payment.") {
		var msg struct {
			BookingID uuid.UUID            `json:"booking_id"`
			EventID   uuid.UUID            `json:"event_id"`
			UserID    uuid.UUID            `json:"user_id"`
			Amount    float64              `json:"amount"`
			Tickets   int                  `json:"tickets"`
			Method    domain.PaymentMethod `json:"payment_method"`
			Status    domain.PaymentStatus `json:"payment_status"`
		}
		if err := json.Unmarshal(d.Body, &msg); err == nil && msg.BookingID != uuid.Nil {
			return w.audit.LogBooking(ctx, d.RoutingKey, domain.Booking{
				ID:      msg.BookingID,
				EventID: msg.EventID,
				UserID:  msg.UserID,
				Amount:  msg.Amount,
				Tickets: msg.Tickets,
				Method:  msg.Method,
				Status:  msg.Status,
			})
		}
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		w.logger.WithField("message_id", d.MessageId).Error("unreadable message payload", err)
		return nil
	}

	userID := uuid.Nil
	if raw, ok := payload["user_id"].(string); ok {
		if parsed, err := uuid.Parse(raw); err == nil {
			userID = parsed
		}
	}
	return w.audit.LogAction(ctx, d.RoutingKey, userID, payload)
}
