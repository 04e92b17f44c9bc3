package notification

import (
	"context"

	"velour/models"
)

// TypeEmailSend is the asynq task type for outbound email delivery.
const TypeEmailSend = "email:send"

// EmailMessage is the payload carried by an email:send task.
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Mailer delivers a single email. Implementations must respect ctx deadlines.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// Notifier dispatches customer-facing confirmations. Every method is
// fire-and-forget: failures are logged, never returned, so a broken mail path
// can't fail the booking or payment that triggered it.
type Notifier interface {
	BookingConfirmation(ctx context.Context, b models.Booking)
	ClassBookingConfirmation(ctx context.Context, cb models.ClassBooking)
	PaymentConfirmation(ctx context.Context, att models.PaymentAttempt, email string)
}
