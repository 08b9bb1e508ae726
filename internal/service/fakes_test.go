package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandeshlamsal/eventpasal/internal/adapters/postgres"
	"github.com/sandeshlamsal/eventpasal/internal/domain"
)

type fakeEventStore struct {
	mu      sync.Mutex
	events  map[uuid.UUID]domain.Event
	order   []uuid.UUID
	readErr error
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[uuid.UUID]domain.Event)}
}

func (f *fakeEventStore) put(ev domain.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[ev.ID]; !ok {
		f.order = append(f.order, ev.ID)
	}
	f.events[ev.ID] = ev
}

func (f *fakeEventStore) InsertEvent(ctx context.Context, ev domain.Event) error {
	f.put(ev)
	return nil
}

func (f *fakeEventStore) GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	ev, ok := f.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ev, nil
}

func (f *fakeEventStore) ListEvents(ctx context.Context, search string) ([]domain.Event, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Event
	for _, id := range f.order {
		ev := f.events[id]
		if search == "" || strings.Contains(strings.ToLower(ev.Title), strings.ToLower(search)) {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeEventStore) UpcomingEvents(ctx context.Context, from time.Time, limit int) ([]domain.Event, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	all, _ := f.ListEvents(ctx, "")
	var out []domain.Event
	for _, ev := range all {
		if !ev.Date.Before(from) {
			out = append(out, ev)
		}
	}
	return capList(out, limit), nil
}

func (f *fakeEventStore) FeaturedEvents(ctx context.Context, from time.Time, limit int) ([]domain.Event, error) {
	out, err := f.UpcomingEvents(ctx, from, 0)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Attendees > out[j].Attendees })
	return capList(out, limit), nil
}

func (f *fakeEventStore) ListEventsByOwner(ctx context.Context, userID uuid.UUID) ([]domain.Event, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Event
	for _, id := range f.order {
		if f.events[id].UserID == userID {
			out = append(out, f.events[id])
		}
	}
	return out, nil
}

func (f *fakeEventStore) UpdateEvent(ctx context.Context, ev domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[ev.ID]; !ok {
		return domain.ErrNotFound
	}
	f.events[ev.ID] = ev
	return nil
}

func (f *fakeEventStore) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.events, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeEventStore) IncrementAttendees(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev, ok := f.events[id]
	if !ok {
		return domain.ErrNotFound
	}
	if ev.Attendees >= ev.Capacity {
		return domain.ErrCapacityFull
	}
	ev.Attendees++
	f.events[id] = ev
	return nil
}

func (f *fakeEventStore) OutOfBandPrices(ctx context.Context, min, max float64) ([]postgres.EventPrice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []postgres.EventPrice
	for _, id := range f.order {
		ev := f.events[id]
		if ev.Price != 0 && (ev.Price < min || ev.Price > max) {
			price := ev.Price
			out = append(out, postgres.EventPrice{ID: ev.ID, Price: &price})
		}
	}
	return out, nil
}

func (f *fakeEventStore) SetEventPrice(ctx context.Context, id uuid.UUID, price float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev, ok := f.events[id]
	if !ok {
		return domain.ErrNotFound
	}
	ev.Price = price
	f.events[id] = ev
	return nil
}

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]domain.Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[uuid.UUID]domain.Booking)}
}

func (f *fakeBookingStore) InsertBooking(ctx context.Context, b domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingStore) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (f *fakeBookingStore) CompleteBooking(ctx context.Context, id uuid.UUID, completedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Status != domain.PaymentPending {
		return domain.ErrNotFound
	}
	b.Status = domain.PaymentCompleted
	b.CompletedAt = &completedAt
	f.bookings[id] = b
	return nil
}

func (f *fakeBookingStore) ListBookingsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeNotifStore struct {
	mu     sync.Mutex
	notifs []domain.Notification
}

func (f *fakeNotifStore) CreateNotification(ctx context.Context, n domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifs = append(f.notifs, n)
	return nil
}

func (f *fakeNotifStore) ListNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Notification
	for _, n := range f.notifs {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeNotifStore) MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifs {
		if f.notifs[i].ID == id && f.notifs[i].UserID == userID {
			f.notifs[i].Read = true
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeCache never hits; it only records invalidations.
type fakeCache struct {
	mu          sync.Mutex
	invalidated []uuid.UUID
}

func (f *fakeCache) GetEvents(ctx context.Context, key string) ([]domain.Event, bool) {
	return nil, false
}

func (f *fakeCache) SetEvents(ctx context.Context, key string, events []domain.Event) {}

func (f *fakeCache) GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, bool) {
	return nil, false
}

func (f *fakeCache) SetEvent(ctx context.Context, ev *domain.Event) {}

func (f *fakeCache) InvalidateEvent(ctx context.Context, id, ownerID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, id)
}

type fakePublisher struct {
	mu   sync.Mutex
	keys []string
}

func (f *fakePublisher) PublishBooking(ctx context.Context, key string, b domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	return nil
}

func (f *fakePublisher) PublishEvent(ctx context.Context, ev domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, "event.created")
	return nil
}

type fakeScheduler struct {
	mu        sync.Mutex
	scheduled []uuid.UUID
}

func (f *fakeScheduler) Schedule(bookingID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, bookingID)
}
