package payment

import (
	"errors"
	"fmt"
)

var (
	// ErrBookingNotFound signals a checkout for an unknown booking.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrClassBookingNotFound signals a checkout for an unknown class booking.
	ErrClassBookingNotFound = errors.New("class booking not found")
	// ErrBookingNotPayable signals the target booking is not Pending.
	ErrBookingNotPayable = errors.New("booking is not awaiting payment")
	// ErrPaymentInProgress signals an unresolved attempt already exists for
	// the booking.
	ErrPaymentInProgress = errors.New("a payment is already in progress for this booking")
)

// ValidationError reports a rejected checkout input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AuthError reports a failed token acquisition against the gateway.
type AuthError struct {
	Status int
	Body   string
}

func (e AuthError) Error() string {
	return fmt.Sprintf("gateway auth failed with status %d: %s", e.Status, e.Body)
}

// GatewayError reports a synchronous rejection from the gateway.
type GatewayError struct {
	Code        string
	Description string
}

func (e GatewayError) Error() string {
	return fmt.Sprintf("gateway rejected request (code %s): %s", e.Code, e.Description)
}
