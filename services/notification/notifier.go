package notification

import (
	"context"
	"encoding/json"

	"velour/models"
	"velour/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsyncNotifier queues confirmation emails as asynq tasks so delivery happens
// off the request path. Enqueue failures are logged and dropped.
type AsyncNotifier struct {
	Client *asynq.Client
}

// NewAsyncNotifier builds a Notifier over the given asynq client.
func NewAsyncNotifier(client *asynq.Client) *AsyncNotifier {
	return &AsyncNotifier{Client: client}
}

func (n *AsyncNotifier) enqueue(ctx context.Context, msg EmailMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		utils.GetLogger().Error("failed to marshal email payload", zap.Error(err))
		return
	}
	task := asynq.NewTask(TypeEmailSend, payload)
	if _, err := n.Client.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		utils.GetLogger().Error("failed to enqueue email",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
	}
}

func (n *AsyncNotifier) BookingConfirmation(ctx context.Context, b models.Booking) {
	n.enqueue(ctx, bookingEmail(b))
}

func (n *AsyncNotifier) ClassBookingConfirmation(ctx context.Context, cb models.ClassBooking) {
	n.enqueue(ctx, classBookingEmail(cb))
}

func (n *AsyncNotifier) PaymentConfirmation(ctx context.Context, att models.PaymentAttempt, email string) {
	if email == "" {
		return
	}
	n.enqueue(ctx, paymentEmail(att, email))
}
