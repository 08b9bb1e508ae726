package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

type PaymentMethod string

const (
	MethodEsewa      PaymentMethod = "esewa"
	MethodKhalti     PaymentMethod = "khalti"
	MethodFonepay    PaymentMethod = "fonepay"
	MethodConnectIPS PaymentMethod = "connectips"
	MethodFree       PaymentMethod = "free"
)

var PaymentMethods = []PaymentMethod{MethodEsewa, MethodKhalti, MethodFonepay, MethodConnectIPS}

func ValidPaymentMethod(m PaymentMethod) bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

const (
	// Flat surcharge applied to every paid booking regardless of method.
	SurchargeRate = 1.1

	MinPhoneDigits = 10
	MaxTickets     = 10
)

type Booking struct {
	ID          uuid.UUID     `json:"id"`
	EventID     uuid.UUID     `json:"event_id"`
	UserID      uuid.UUID     `json:"user_id"`
	Amount      float64       `json:"amount"`
	Tickets     int           `json:"tickets"`
	Status      PaymentStatus `json:"payment_status"`
	Method      PaymentMethod `json:"payment_method"`
	PhoneNumber string        `json:"phone_number,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"payment_completed_at,omitempty"`
}

// ChargeAmount computes the total charged for a paid booking from the
// display price, not the raw stored price.
func ChargeAmount(displayPrice float64, tickets int) float64 {
	return displayPrice * float64(tickets) * SurchargeRate
}

// NewPendingBooking starts the paid flow; the booking stays pending until a
// completion step flips it.
func NewPendingBooking(eventID, userID uuid.UUID, amount float64, tickets int, method PaymentMethod, phone string) Booking {
	return Booking{
		ID:          uuid.New(),
		EventID:     eventID,
		UserID:      userID,
		Amount:      amount,
		Tickets:     tickets,
		Status:      PaymentPending,
		Method:      method,
		PhoneNumber: phone,
		CreatedAt:   time.Now().UTC(),
	}
}

// NewFreeBooking is created already completed: free registration has no
// payment step.
func NewFreeBooking(eventID, userID uuid.UUID) Booking {
	now := time.Now().UTC()
	return Booking{
		ID:          uuid.New(),
		EventID:     eventID,
		UserID:      userID,
		Amount:      0,
		Tickets:     1,
		Status:      PaymentCompleted,
		Method:      MethodFree,
		CreatedAt:   now,
		CompletedAt: &now,
	}
}
