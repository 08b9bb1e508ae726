package domain

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

const DefaultCapacity = 100

// Categories an event may belong to. "All" is a filter value only and is
// never stored.
var Categories = []string{
	"Music",
	"Technology",
	"Arts",
	"Business",
	"Sports",
	"Food",
	"Education",
	"Health",
}

type Event struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        time.Time  `json:"date"`
	Time        string     `json:"time"`
	Location    string     `json:"location"`
	Category    string     `json:"category"`
	Price       float64    `json:"price"`
	ImageURL    string     `json:"image_url,omitempty"`
	UserID      uuid.UUID  `json:"user_id"`
	Attendees   int        `json:"attendees"`
	Capacity    int        `json:"capacity"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (e *Event) IsFree() bool {
	return e.Price == 0
}

func (e *Event) AtCapacity() bool {
	return e.Attendees >= e.Capacity
}

func ValidCategory(c string) bool {
	for _, known := range Categories {
		if strings.EqualFold(c, known) {
			return true
		}
	}
	return false
}

// Place-name tokens a title must carry unless it contains non-ASCII text.
var titleTokens = []string{"Nepal", "Kathmandu", "Pokhara", "Lalitpur", "Bhaktapur", "Chitwan"}

// TitleAllowed reports whether a title satisfies the content policy: it must
// mention a recognized regional place name or contain at least one non-ASCII
// rune (Devanagari titles pass on the second condition).
func TitleAllowed(title string) bool {
	for _, tok := range titleTokens {
		if strings.Contains(title, tok) {
			return true
		}
	}
	for _, r := range title {
		if r > unicode.MaxASCII {
			return true
		}
	}
	return false
}
