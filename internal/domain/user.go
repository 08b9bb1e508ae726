package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserType string

const (
	UserAttendee  UserType = "attendee"
	UserOrganizer UserType = "organizer"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	UserType     UserType  `json:"user_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the read-mostly snapshot of the signed-in user handed to
// subscribers; it is replaced wholesale on every auth change.
type Session struct {
	User        User      `json:"user"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}
