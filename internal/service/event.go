package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sandeshlamsal/eventpasal/internal/adapters/rabbit"
	redisadapter "github.com/sandeshlamsal/eventpasal/internal/adapters/redis"
	"github.com/sandeshlamsal/eventpasal/internal/domain"
	"github.com/sandeshlamsal/eventpasal/internal/fallback"
	"github.com/sandeshlamsal/eventpasal/internal/observability"
	"github.com/sandeshlamsal/eventpasal/internal/pricing"
)

// EventService validates input, talks to the row store, and keeps the read
// cache coherent by invalidating after every mutation.
type EventService struct {
	events   EventStore
	bookings BookingStore
	notifs   NotificationStore
	cache    EventCache
	pub      BookingPublisher
	validate *validator.Validate
	logger   observability.Logger
}

func NewEventService(events EventStore, bookings BookingStore, notifs NotificationStore,
	cache EventCache, pub BookingPublisher, logger observability.Logger) *EventService {
	return &EventService{
		events:   events,
		bookings: bookings,
		notifs:   notifs,
		cache:    cache,
		pub:      pub,
		validate: validator.New(),
		logger:   logger,
	}
}

type CreateEventInput struct {
	Title       string `json:"title" validate:"required,min=4,max=150"`
	Description string `json:"description" validate:"max=2000"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required,datetime=15:04"`
	Location    string `json:"location" validate:"required,max=200"`
	Category    string `json:"category" validate:"required"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	Capacity    int    `json:"capacity" validate:"omitempty,min=1"`
}

func (s *EventService) Create(ctx context.Context, user *domain.User, in CreateEventInput) (*domain.Event, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, errors.Wrap(domain.ErrInvalidInput, err.Error())
	}
	if !domain.ValidCategory(in.Category) {
		return nil, errors.Wrap(domain.ErrInvalidInput, "unknown event category")
	}
	if !domain.TitleAllowed(in.Title) {
		return nil, errors.Wrap(domain.ErrInvalidInput, "event title should include a Nepali location or name")
	}
	price, err := pricing.ValidateString(in.Price)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, errors.Wrap(domain.ErrInvalidInput, "date must be YYYY-MM-DD")
	}

	capacity := in.Capacity
	if capacity == 0 {
		capacity = domain.DefaultCapacity
	}

	ev := domain.Event{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Date:        date,
		Time:        in.Time,
		Location:    in.Location,
		Category:    in.Category,
		Price:       price,
		ImageURL:    in.ImageURL,
		UserID:      user.ID,
		Attendees:   0,
		Capacity:    capacity,
		CreatedAt:   time.Now().UTC(),
	}
	ev.UpdatedAt = ev.CreatedAt

	if err := s.events.InsertEvent(ctx, ev); err != nil {
		return nil, err
	}
	s.cache.InvalidateEvent(ctx, ev.ID, ev.UserID)
	if err := s.pub.PublishEvent(ctx, ev); err != nil {
		s.logger.Error("failed to publish event message", err)
	}
	s.logger.WithField("event_id", ev.ID.String()).Info("event created")
	return &ev, nil
}

type UpdateEventInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
	Category    *string `json:"category"`
	Price       *string `json:"price"`
	ImageURL    *string `json:"image_url"`
	Capacity    *int    `json:"capacity"`
}

func (s *EventService) Update(ctx context.Context, user *domain.User, id uuid.UUID, in UpdateEventInput) (*domain.Event, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	ev, err := s.events.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev.UserID != user.ID {
		return nil, domain.ErrForbidden
	}

	if in.Title != nil {
		if !domain.TitleAllowed(*in.Title) {
			return nil, errors.Wrap(domain.ErrInvalidInput, "event title should include a Nepali location or name")
		}
		ev.Title = strings.TrimSpace(*in.Title)
	}
	if in.Price != nil {
		price, err := pricing.ValidateString(*in.Price)
		if err != nil {
			return nil, err
		}
		ev.Price = price
	}
	if in.Category != nil {
		if !domain.ValidCategory(*in.Category) {
			return nil, errors.Wrap(domain.ErrInvalidInput, "unknown event category")
		}
		ev.Category = *in.Category
	}
	if in.Date != nil {
		date, err := time.Parse("2006-01-02", *in.Date)
		if err != nil {
			return nil, errors.Wrap(domain.ErrInvalidInput, "date must be YYYY-MM-DD")
		}
		ev.Date = date
	}
	if in.Time != nil {
		if _, err := time.Parse("15:04", *in.Time); err != nil {
			return nil, errors.Wrap(domain.ErrInvalidInput, "time must be HH:MM")
		}
		ev.Time = *in.Time
	}
	if in.Description != nil {
		ev.Description = *in.Description
	}
	if in.Location != nil {
		ev.Location = *in.Location
	}
	if in.ImageURL != nil {
		ev.ImageURL = *in.ImageURL
	}
	if in.Capacity != nil {
		if *in.Capacity < 1 {
			return nil, errors.Wrap(domain.ErrInvalidInput, "capacity must be positive")
		}
		ev.Capacity = *in.Capacity
	}

	if err := s.events.UpdateEvent(ctx, *ev); err != nil {
		return nil, err
	}
	s.cache.InvalidateEvent(ctx, ev.ID, ev.UserID)
	return ev, nil
}

func (s *EventService) Delete(ctx context.Context, user *domain.User, id uuid.UUID) error {
	if user == nil {
		return domain.ErrUnauthenticated
	}
	ev, err := s.events.GetEvent(ctx, id)
	if err != nil {
		return err
	}
	if ev.UserID != user.ID {
		return domain.ErrForbidden
	}
	if err := s.events.DeleteEvent(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateEvent(ctx, id, ev.UserID)
	s.logger.WithField("event_id", id.String()).Info("event deleted")
	return nil
}

// List fetches the full listing (optionally narrowed by search) and applies
// the filter criteria in memory, preserving fetch order. A connectivity
// failure falls back to the bundled dataset.
func (s *EventService) List(ctx context.Context, search string, criteria domain.FilterCriteria) ([]domain.Event, error) {
	var events []domain.Event
	cacheable := search == ""

	if cacheable {
		if cached, ok := s.cache.GetEvents(ctx, redisadapter.ListKey()); ok {
			return domain.FilterEvents(cached, criteria), nil
		}
	}

	events, err := s.events.ListEvents(ctx, search)
	if err != nil {
		s.logger.Error("failed to fetch events, using fallback data", err)
		observability.FallbackReads.Inc()
		return domain.FilterEvents(fallback.Events(), criteria), nil
	}
	if cacheable {
		s.cache.SetEvents(ctx, redisadapter.ListKey(), events)
	}
	return domain.FilterEvents(events, criteria), nil
}

func (s *EventService) Upcoming(ctx context.Context, limit int) ([]domain.Event, error) {
	if cached, ok := s.cache.GetEvents(ctx, redisadapter.UpcomingKey()); ok {
		return capList(cached, limit), nil
	}
	events, err := s.events.UpcomingEvents(ctx, today(), limit)
	if err != nil {
		s.logger.Error("failed to fetch upcoming events, using fallback data", err)
		observability.FallbackReads.Inc()
		return capList(upcomingFallback(), limit), nil
	}
	s.cache.SetEvents(ctx, redisadapter.UpcomingKey(), events)
	return events, nil
}

func (s *EventService) Featured(ctx context.Context, limit int) ([]domain.Event, error) {
	if cached, ok := s.cache.GetEvents(ctx, redisadapter.FeaturedKey()); ok {
		return capList(cached, limit), nil
	}
	events, err := s.events.FeaturedEvents(ctx, today(), limit)
	if err != nil {
		s.logger.Error("failed to fetch featured events, using fallback data", err)
		observability.FallbackReads.Inc()
		events = upcomingFallback()
		sortByAttendeesDesc(events)
		return capList(events, limit), nil
	}
	s.cache.SetEvents(ctx, redisadapter.FeaturedKey(), events)
	return events, nil
}

func (s *EventService) Get(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	if cached, ok := s.cache.GetEvent(ctx, id); ok {
		return cached, nil
	}
	ev, err := s.events.GetEvent(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		s.logger.Error("failed to fetch event, checking fallback data", err)
		observability.FallbackReads.Inc()
		for _, fb := range fallback.Events() {
			if fb.ID == id {
				return &fb, nil
			}
		}
		return nil, err
	}
	s.cache.SetEvent(ctx, ev)
	return ev, nil
}

// Mine lists the current user's own events, newest first. Errors degrade to
// an empty list rather than a failure page.
func (s *EventService) Mine(ctx context.Context, user *domain.User) ([]domain.Event, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	if cached, ok := s.cache.GetEvents(ctx, redisadapter.OwnerKey(user.ID)); ok {
		return cached, nil
	}
	events, err := s.events.ListEventsByOwner(ctx, user.ID)
	if err != nil {
		s.logger.Error("failed to fetch user events", err)
		return []domain.Event{}, nil
	}
	s.cache.SetEvents(ctx, redisadapter.OwnerKey(user.ID), events)
	return events, nil
}

// RegisterFree handles the free-event path: the booking is written already
// completed, the attendee count bumped, and a notification recorded, as
// three sequential writes with no shared transaction.
func (s *EventService) RegisterFree(ctx context.Context, user *domain.User, eventID uuid.UUID) (*domain.Booking, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	ev, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !ev.IsFree() {
		return nil, domain.ErrNotFreeEvent
	}
	if ev.AtCapacity() {
		return nil, domain.ErrCapacityFull
	}

	booking := domain.NewFreeBooking(eventID, user.ID)
	if err := s.bookings.InsertBooking(ctx, booking); err != nil {
		return nil, err
	}
	if err := s.events.IncrementAttendees(ctx, eventID); err != nil {
		return nil, err
	}
	s.cache.InvalidateEvent(ctx, eventID, ev.UserID)

	notif := domain.NewNotification(user.ID, domain.NotifEventRegistration,
		fmt.Sprintf("You have successfully registered for %s", ev.Title))
	if err := s.notifs.CreateNotification(ctx, notif); err != nil {
		s.logger.Error("failed to create registration notification", err)
	}
	if err := s.pub.PublishBooking(ctx, rabbit.KeyBookingCreated, booking); err != nil {
		s.logger.Error("failed to publish booking message", err)
	}
	observability.RegistrationsTotal.WithLabelValues("free").Inc()

	s.logger.WithField("event_id", eventID.String()).
		WithField("user_id", user.ID.String()).Info("free registration completed")
	return &booking, nil
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func upcomingFallback() []domain.Event {
	var out []domain.Event
	cutoff := today()
	for _, ev := range fallback.Events() {
		if !ev.Date.Before(cutoff) {
			out = append(out, ev)
		}
	}
	return out
}

func sortByAttendeesDesc(events []domain.Event) {
	for i := 1; i < len(events); i++ {
		for j := i; j > 0 && events[j].Attendees > events[j-1].Attendees; j-- {
			events[j], events[j-1] = events[j-1], events[j]
		}
	}
}

func capList(events []domain.Event, limit int) []domain.Event {
	if limit > 0 && len(events) > limit {
		return events[:limit]
	}
	return events
}
