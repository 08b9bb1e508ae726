package domain

import "errors"

var (
	ErrSerializationFailure = errors.New("serialization failure")
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnauthenticated      = errors.New("authentication required")
	ErrForbidden            = errors.New("forbidden")
	ErrUnavailable          = errors.New("backend unavailable")

	ErrCapacityFull = errors.New("event is at full capacity")
	ErrNotFreeEvent = errors.New("this is not a free event")
)
