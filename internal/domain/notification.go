package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotifEventRegistration NotificationType = "event_registration"
	NotifPayment           NotificationType = "payment"
	NotifSystem            NotificationType = "system"
)

type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

func NewNotification(userID uuid.UUID, typ NotificationType, message string) Notification {
	return Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      typ,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}
