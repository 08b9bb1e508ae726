package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sandeshlamsal/eventpasal/internal/domain"
	"github.com/sandeshlamsal/eventpasal/internal/observability"
)

func TestRepairPricesClampsToNearestBound(t *testing.T) {
	events := newFakeEventStore()
	low := domain.Event{ID: uuid.New(), Title: "Lalitpur Art Walk", Price: 85, Capacity: 100}
	high := domain.Event{ID: uuid.New(), Title: "Pokhara Paragliding Expo", Price: 12000, Capacity: 100}
	fine := domain.Event{ID: uuid.New(), Title: "Kathmandu Book Fair", Price: 1500, Capacity: 100}
	free := domain.Event{ID: uuid.New(), Title: "Bhaktapur Open Day", Price: 0, Capacity: 100}
	for _, ev := range []domain.Event{low, high, fine, free} {
		events.put(ev)
	}

	svc := NewRepairService(events, observability.NewLogger())
	repaired, err := svc.RepairPrices(context.Background())
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	if repaired != 2 {
		t.Fatalf("repaired = %d, want 2", repaired)
	}

	got, _ := events.GetEvent(context.Background(), low.ID)
	if got.Price != 500 {
		t.Fatalf("low price = %v, want 500", got.Price)
	}
	got, _ = events.GetEvent(context.Background(), high.ID)
	if got.Price != 5000 {
		t.Fatalf("high price = %v, want 5000", got.Price)
	}
	got, _ = events.GetEvent(context.Background(), fine.ID)
	if got.Price != 1500 {
		t.Fatalf("in-band price moved to %v", got.Price)
	}
	got, _ = events.GetEvent(context.Background(), free.ID)
	if got.Price != 0 {
		t.Fatalf("free price moved to %v", got.Price)
	}
}

func TestRepairPricesIsIdempotent(t *testing.T) {
	events := newFakeEventStore()
	events.put(domain.Event{ID: uuid.New(), Title: "Chitwan Jungle Fest", Price: 49, Capacity: 100})

	svc := NewRepairService(events, observability.NewLogger())
	if _, err := svc.RepairPrices(context.Background()); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	repaired, err := svc.RepairPrices(context.Background())
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if repaired != 0 {
		t.Fatalf("second pass repaired %d rows", repaired)
	}
}
