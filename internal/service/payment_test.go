package service

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/sandeshlamsal/eventpasal/internal/domain"
	"github.com/sandeshlamsal/eventpasal/internal/observability"
)

func newPaymentService(t *testing.T) (*PaymentService, *fakeEventStore, *fakeBookingStore, *fakeNotifStore, *fakePublisher, *fakeScheduler) {
	t.Helper()
	events := newFakeEventStore()
	bookings := newFakeBookingStore()
	notifs := &fakeNotifStore{}
	pub := &fakePublisher{}
	sched := &fakeScheduler{}
	svc := NewPaymentService(events, bookings, notifs, pub, observability.NewLogger())
	svc.SetScheduler(sched)
	return svc, events, bookings, notifs, pub, sched
}

func seedPaidEvent(events *fakeEventStore, price float64, capacity int) domain.Event {
	ev := domain.Event{
		ID:       uuid.New(),
		Title:    "Kathmandu Tech Summit",
		Category: "Technology",
		Price:    price,
		UserID:   uuid.New(),
		Capacity: capacity,
	}
	events.put(ev)
	return ev
}

func validPaymentInput(eventID uuid.UUID) InitiatePaymentInput {
	return InitiatePaymentInput{
		EventID:     eventID,
		Method:      domain.MethodEsewa,
		PhoneNumber: "9841234567",
		Tickets:     2,
	}
}

func TestInitiateChargesDisplayPricePlusSurcharge(t *testing.T) {
	svc, events, bookings, _, pub, sched := newPaymentService(t)
	ev := seedPaidEvent(events, 1000, 50)

	booking, err := svc.Initiate(context.Background(), testUser(), validPaymentInput(ev.ID))
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	// 1000 per ticket, two tickets, 10% surcharge.
	if booking.Amount != 2200 {
		t.Fatalf("amount = %v, want 2200", booking.Amount)
	}
	if booking.Status != domain.PaymentPending {
		t.Fatalf("status = %s, want pending", booking.Status)
	}

	stored, err := bookings.GetBooking(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("booking not persisted: %v", err)
	}
	if stored.Status != domain.PaymentPending {
		t.Fatalf("stored status = %s", stored.Status)
	}
	if len(sched.scheduled) != 1 || sched.scheduled[0] != booking.ID {
		t.Fatalf("scheduler armed for %v", sched.scheduled)
	}
	if len(pub.keys) != 1 || pub.keys[0] != "booking.created" {
		t.Fatalf("published keys = %v", pub.keys)
	}
}

func TestInitiateScalesLegacyStoredPrice(t *testing.T) {
	svc, events, _, _, _, _ := newPaymentService(t)
	// Stored 85 displays as the clamped 5000.
	ev := seedPaidEvent(events, 85, 50)

	in := validPaymentInput(ev.ID)
	in.Tickets = 1
	booking, err := svc.Initiate(context.Background(), testUser(), in)
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if booking.Amount != 5500 {
		t.Fatalf("amount = %v, want 5500", booking.Amount)
	}
}

func TestInitiateValidation(t *testing.T) {
	svc, events, _, _, _, _ := newPaymentService(t)
	ev := seedPaidEvent(events, 1500, 50)

	cases := []struct {
		name   string
		mutate func(*InitiatePaymentInput)
	}{
		{"unknown method", func(in *InitiatePaymentInput) { in.Method = "paypal" }},
		{"free is not a gateway method", func(in *InitiatePaymentInput) { in.Method = domain.MethodFree }},
		{"short phone", func(in *InitiatePaymentInput) { in.PhoneNumber = "98412" }},
		{"zero tickets", func(in *InitiatePaymentInput) { in.Tickets = 0 }},
		{"too many tickets", func(in *InitiatePaymentInput) { in.Tickets = domain.MaxTickets + 1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validPaymentInput(ev.ID)
			tc.mutate(&in)
			_, err := svc.Initiate(context.Background(), testUser(), in)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestInitiateRejectsFreeEvent(t *testing.T) {
	svc, events, _, _, _, _ := newPaymentService(t)
	ev := seedPaidEvent(events, 0, 50)

	_, err := svc.Initiate(context.Background(), testUser(), validPaymentInput(ev.ID))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestInitiateRejectsFullEvent(t *testing.T) {
	svc, events, _, _, _, _ := newPaymentService(t)
	ev := seedPaidEvent(events, 1500, 5)
	ev.Attendees = 5
	events.put(ev)

	_, err := svc.Initiate(context.Background(), testUser(), validPaymentInput(ev.ID))
	if !errors.Is(err, domain.ErrCapacityFull) {
		t.Fatalf("err = %v, want ErrCapacityFull", err)
	}
}

func TestCompleteFlipsPendingBooking(t *testing.T) {
	svc, events, bookings, notifs, pub, _ := newPaymentService(t)
	ev := seedPaidEvent(events, 1500, 50)
	user := testUser()

	booking, err := svc.Initiate(context.Background(), user, validPaymentInput(ev.ID))
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if err := svc.Complete(context.Background(), booking.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	stored, _ := bookings.GetBooking(context.Background(), booking.ID)
	if stored.Status != domain.PaymentCompleted {
		t.Fatalf("status = %s, want completed", stored.Status)
	}
	if stored.CompletedAt == nil {
		t.Fatal("completed_at not set")
	}
	if len(notifs.notifs) != 1 || notifs.notifs[0].Type != domain.NotifPayment {
		t.Fatalf("notifications = %+v", notifs.notifs)
	}
	if pub.keys[len(pub.keys)-1] != "payment.completed" {
		t.Fatalf("published keys = %v", pub.keys)
	}
}

func TestCompleteUnknownBooking(t *testing.T) {
	svc, _, _, _, _, _ := newPaymentService(t)
	err := svc.Complete(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetBookingOwnership(t *testing.T) {
	svc, events, _, _, _, _ := newPaymentService(t)
	ev := seedPaidEvent(events, 1500, 50)
	owner := testUser()

	booking, err := svc.Initiate(context.Background(), owner, validPaymentInput(ev.ID))
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}

	if _, err := svc.GetBooking(context.Background(), testUser(), booking.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	got, err := svc.GetBooking(context.Background(), owner, booking.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != booking.ID {
		t.Fatal("wrong booking returned")
	}
}
