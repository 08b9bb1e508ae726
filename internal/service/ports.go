package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sandeshlamsal/eventpasal/internal/adapters/postgres"
	"github.com/sandeshlamsal/eventpasal/internal/domain"
)

// Store interfaces are satisfied by *postgres.Repository; tests plug in
// in-memory fakes.

type EventStore interface {
	InsertEvent(ctx context.Context, ev domain.Event) error
	GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	ListEvents(ctx context.Context, search string) ([]domain.Event, error)
	UpcomingEvents(ctx context.Context, from time.Time, limit int) ([]domain.Event, error)
	FeaturedEvents(ctx context.Context, from time.Time, limit int) ([]domain.Event, error)
	ListEventsByOwner(ctx context.Context, userID uuid.UUID) ([]domain.Event, error)
	UpdateEvent(ctx context.Context, ev domain.Event) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	IncrementAttendees(ctx context.Context, id uuid.UUID) error
	OutOfBandPrices(ctx context.Context, min, max float64) ([]postgres.EventPrice, error)
	SetEventPrice(ctx context.Context, id uuid.UUID, price float64) error
}

type BookingStore interface {
	InsertBooking(ctx context.Context, b domain.Booking) error
	GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	CompleteBooking(ctx context.Context, id uuid.UUID, completedAt time.Time) error
	ListBookingsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, n domain.Notification) error
	ListNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) error
}

type EventCache interface {
	GetEvents(ctx context.Context, key string) ([]domain.Event, bool)
	SetEvents(ctx context.Context, key string, events []domain.Event)
	GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, bool)
	SetEvent(ctx context.Context, ev *domain.Event)
	InvalidateEvent(ctx context.Context, id, ownerID uuid.UUID)
}

type BookingPublisher interface {
	PublishBooking(ctx context.Context, key string, b domain.Booking) error
	PublishEvent(ctx context.Context, ev domain.Event) error
}

// CompletionScheduler arms the deferred payment confirmation.
type CompletionScheduler interface {
	Schedule(bookingID uuid.UUID)
}
