// Package fallback bundles a static event dataset served when the row store
// is unreachable on read paths. Write paths never touch it.
package fallback

import (
	"time"

	"github.com/google/uuid"
	"github.com/sandeshlamsal/eventpasal/internal/domain"
)

var seedUser = uuid.MustParse("7b1f8a8e-0000-4000-8000-000000000001")

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Events returns a fresh copy of the bundled dataset so callers can filter
// in place without corrupting the seed.
func Events() []domain.Event {
	now := time.Now().UTC()
	events := []domain.Event{
		{
			ID:          uuid.MustParse("c1a94a56-0000-4000-8000-000000000001"),
			Title:       "Kathmandu Tech Conference 2025",
			Description: "Keynotes from industry leaders, workshops on new technologies, and networking with professionals from across the region.",
			Date:        date(2025, time.June, 15),
			Time:        "09:00",
			Location:    "Kathmandu",
			Category:    "Technology",
			Price:       2500,
			Attendees:   85,
			Capacity:    100,
		},
		{
			ID:          uuid.MustParse("c1a94a56-0000-4000-8000-000000000002"),
			Title:       "Pokhara Lakeside Music Festival",
			Description: "A two-day outdoor festival featuring artists across multiple genres, food stalls, and art installations by the lake.",
			Date:        date(2025, time.July, 20),
			Time:        "12:00",
			Location:    "Pokhara",
			Category:    "Music",
			Price:       1500,
			Attendees:   60,
			Capacity:    100,
		},
		{
			ID:          uuid.MustParse("c1a94a56-0000-4000-8000-000000000003"),
			Title:       "Nepal Startup Meetup",
			Description: "An evening of founder stories, pitch practice, and open networking for the local startup community.",
			Date:        date(2025, time.August, 5),
			Time:        "17:30",
			Location:    "Lalitpur",
			Category:    "Business",
			Price:       0,
			Attendees:   40,
			Capacity:    100,
		},
		{
			ID:          uuid.MustParse("c1a94a56-0000-4000-8000-000000000004"),
			Title:       "Bhaktapur Heritage Food Walk",
			Description: "A guided walk through the old city with tastings of traditional Newari dishes.",
			Date:        date(2025, time.September, 12),
			Time:        "10:00",
			Location:    "Bhaktapur",
			Category:    "Food",
			Price:       800,
			Attendees:   25,
			Capacity:    100,
		},
	}
	for i := range events {
		events[i].UserID = seedUser
		events[i].CreatedAt = now
		events[i].UpdatedAt = now
	}
	return events
}
