package booking

import (
	"errors"
	"fmt"

	"velour/models"
)

var (
	// ErrSlotUnavailable signals the (date, timeSlot) pair is already held
	// by a non-cancelled booking.
	ErrSlotUnavailable = errors.New("the requested time slot is no longer available")
	// ErrNotFound signals an unknown booking ID.
	ErrNotFound = errors.New("booking not found")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidTransitionError reports an illegal status change.
type InvalidTransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from %s to %s", e.From, e.To)
}
