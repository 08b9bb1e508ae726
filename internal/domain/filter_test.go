package domain

import (
	"testing"
	"time"
)

func listing() []Event {
	day := func(d int) time.Time { return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC) }
	return []Event{
		{Title: "Kathmandu Tech Meetup", Category: "Technology", Location: "Kathmandu", Date: day(10), Price: 1500},
		{Title: "Pokhara Lakeside Concert", Category: "Music", Location: "Pokhara", Date: day(12), Price: 2500},
		{Title: "Nepal Startup Summit", Category: "Business", Location: "Lalitpur", Date: day(10), Price: 0},
		{Title: "Bhaktapur Food Walk", Category: "Food", Location: "Bhaktapur Durbar Square", Date: day(15), Price: 500},
	}
}

func anyPrice() FilterCriteria {
	return FilterCriteria{PriceMax: 1e9}
}

func TestFilterEventsCategoryAllReturnsEverything(t *testing.T) {
	events := listing()

	c := anyPrice()
	c.Category = "All"
	got := FilterEvents(events, c)

	if len(got) != len(events) {
		t.Fatalf("expected %d events, got %d", len(events), len(got))
	}
	for i := range got {
		if got[i].Title != events[i].Title {
			t.Errorf("order not preserved at %d: %q", i, got[i].Title)
		}
	}
}

func TestFilterEventsCategoryCaseInsensitive(t *testing.T) {
	c := anyPrice()
	c.Category = "technology"
	got := FilterEvents(listing(), c)

	if len(got) != 1 || got[0].Title != "Kathmandu Tech Meetup" {
		t.Fatalf("expected only the tech meetup, got %v", got)
	}
}

func TestFilterEventsLocationSubstring(t *testing.T) {
	c := anyPrice()
	c.Location = "durbar"
	got := FilterEvents(listing(), c)

	if len(got) != 1 || got[0].Category != "Food" {
		t.Fatalf("expected the Bhaktapur food walk, got %v", got)
	}
}

func TestFilterEventsCalendarDateIgnoresTimeOfDay(t *testing.T) {
	filterDate := time.Date(2025, time.June, 10, 23, 59, 0, 0, time.UTC)
	c := anyPrice()
	c.Date = &filterDate
	got := FilterEvents(listing(), c)

	if len(got) != 2 {
		t.Fatalf("expected 2 events on June 10, got %d", len(got))
	}
}

func TestFilterEventsPriceRange(t *testing.T) {
	got := FilterEvents(listing(), FilterCriteria{PriceMin: 500, PriceMax: 2000})
	if len(got) != 2 {
		t.Fatalf("expected 2 events in [500,2000], got %d", len(got))
	}

	// Free events only.
	got = FilterEvents(listing(), FilterCriteria{PriceMin: 0, PriceMax: 0})
	if len(got) != 1 || got[0].Price != 0 {
		t.Fatalf("expected only the free event, got %v", got)
	}
}

func TestFilterEventsEmptyResultIsValid(t *testing.T) {
	c := anyPrice()
	c.Location = "Birgunj"
	got := FilterEvents(listing(), c)

	if got == nil {
		t.Fatal("expected empty non-nil slice")
	}
	if len(got) != 0 {
		t.Fatalf("expected no events, got %d", len(got))
	}
}

func TestFilterEventsCombined(t *testing.T) {
	filterDate := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	got := FilterEvents(listing(), FilterCriteria{
		Category: "Business",
		Location: "lalit",
		Date:     &filterDate,
		PriceMax: 5000,
	})
	if len(got) != 1 || got[0].Title != "Nepal Startup Summit" {
		t.Fatalf("expected the startup summit, got %v", got)
	}
}

func TestTitleAllowed(t *testing.T) {
	cases := []struct {
		title string
		ok    bool
	}{
		{"Kathmandu Jazz Night", true},
		{"Visit Nepal Expo", true},
		{"Chitwan Safari Meetup", true},
		{"सांस्कृतिक महोत्सव", true},
		{"Generic Conference", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := TitleAllowed(tc.title); got != tc.ok {
			t.Errorf("TitleAllowed(%q) = %v, want %v", tc.title, got, tc.ok)
		}
	}
}
