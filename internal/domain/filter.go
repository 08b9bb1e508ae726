package domain

import (
	"strings"
	"time"
)

// FilterCriteria is the in-memory refinement applied to a fetched listing.
// The price range is always applied; the other fields are skipped when unset.
type FilterCriteria struct {
	Category string
	Location string
	Date     *time.Time
	PriceMin float64
	PriceMax float64
}

// FilterEvents applies the criteria sequentially over the fetched list,
// preserving fetch order. An empty result is a valid outcome.
func FilterEvents(events []Event, c FilterCriteria) []Event {
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		if c.Category != "" && !strings.EqualFold(c.Category, "All") &&
			!strings.EqualFold(ev.Category, c.Category) {
			continue
		}
		if c.Location != "" &&
			!strings.Contains(strings.ToLower(ev.Location), strings.ToLower(c.Location)) {
			continue
		}
		if c.Date != nil && !sameCalendarDay(ev.Date, *c.Date) {
			continue
		}
		if ev.Price < c.PriceMin || ev.Price > c.PriceMax {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func sameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
