package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/sandeshlamsal/eventpasal/internal/adapters/rabbit"
	"github.com/sandeshlamsal/eventpasal/internal/domain"
	"github.com/sandeshlamsal/eventpasal/internal/observability"
	"github.com/sandeshlamsal/eventpasal/internal/pricing"
)

// PaymentService runs the simulated gateway flow: a pending booking is
// written up front and a deferred completion flips it. The gateway never
// rejects; a booking left pending means the completion task never ran.
type PaymentService struct {
	events    EventStore
	bookings  BookingStore
	notifs    NotificationStore
	pub       BookingPublisher
	scheduler CompletionScheduler
	logger    observability.Logger
}

func NewPaymentService(events EventStore, bookings BookingStore, notifs NotificationStore,
	pub BookingPublisher, logger observability.Logger) *PaymentService {
	return &PaymentService{
		events:   events,
		bookings: bookings,
		notifs:   notifs,
		pub:      pub,
		logger:   logger,
	}
}

// SetScheduler breaks the construction cycle: the scheduler completes
// through this service, and this service arms the scheduler.
func (s *PaymentService) SetScheduler(sched CompletionScheduler) {
	s.scheduler = sched
}

type InitiatePaymentInput struct {
	EventID     uuid.UUID            `json:"event_id"`
	Method      domain.PaymentMethod `json:"payment_method"`
	PhoneNumber string               `json:"phone_number"`
	Tickets     int                  `json:"tickets"`
}

// Initiate validates the payment form, records a pending booking for the
// charged amount, and arms the deferred confirmation.
func (s *PaymentService) Initiate(ctx context.Context, user *domain.User, in InitiatePaymentInput) (*domain.Booking, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !domain.ValidPaymentMethod(in.Method) {
		return nil, errors.Wrap(domain.ErrInvalidInput, "please select a payment method")
	}
	if digitCount(in.PhoneNumber) < domain.MinPhoneDigits {
		return nil, errors.Wrap(domain.ErrInvalidInput, "please enter a valid phone number")
	}
	if in.Tickets < 1 || in.Tickets > domain.MaxTickets {
		return nil, errors.Wrapf(domain.ErrInvalidInput, "tickets must be between 1 and %d", domain.MaxTickets)
	}

	ev, err := s.events.GetEvent(ctx, in.EventID)
	if err != nil {
		return nil, err
	}
	if ev.IsFree() {
		return nil, errors.Wrap(domain.ErrInvalidInput, "free events do not take payments")
	}
	if ev.AtCapacity() {
		return nil, domain.ErrCapacityFull
	}

	amount := domain.ChargeAmount(pricing.Display(ev.Price), in.Tickets)
	booking := domain.NewPendingBooking(in.EventID, user.ID, amount, in.Tickets, in.Method, in.PhoneNumber)
	if err := s.bookings.InsertBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.scheduler.Schedule(booking.ID)
	if err := s.pub.PublishBooking(ctx, rabbit.KeyBookingCreated, booking); err != nil {
		s.logger.Error("failed to publish booking message", err)
	}
	observability.RegistrationsTotal.WithLabelValues("paid").Inc()

	s.logger.WithField("booking_id", booking.ID.String()).
		WithField("amount", fmt.Sprintf("%.2f", amount)).Info("payment initiated")
	return &booking, nil
}

// Complete flips a pending booking to completed. It runs detached from the
// initiating request, so a missing booking is logged upstream rather than
// surfaced to a caller.
func (s *PaymentService) Complete(ctx context.Context, bookingID uuid.UUID) error {
	now := time.Now().UTC()
	if err := s.bookings.CompleteBooking(ctx, bookingID, now); err != nil {
		return err
	}
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	notif := domain.NewNotification(booking.UserID, domain.NotifPayment,
		fmt.Sprintf("Payment of %s confirmed for your booking", pricing.FormatNPR(booking.Amount)))
	if err := s.notifs.CreateNotification(ctx, notif); err != nil {
		s.logger.Error("failed to create payment notification", err)
	}
	if err := s.pub.PublishBooking(ctx, rabbit.KeyPaymentCompleted, *booking); err != nil {
		s.logger.Error("failed to publish payment message", err)
	}

	s.logger.WithField("booking_id", bookingID.String()).Info("payment completed")
	return nil
}

// GetBooking returns a booking only to the user who made it.
func (s *PaymentService) GetBooking(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Booking, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	booking, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != user.ID {
		return nil, domain.ErrForbidden
	}
	return booking, nil
}

// MyBookings lists the user's bookings, newest first.
func (s *PaymentService) MyBookings(ctx context.Context, user *domain.User) ([]domain.Booking, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.bookings.ListBookingsByUser(ctx, user.ID)
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
