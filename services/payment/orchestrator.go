package payment

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	paymentRepo "velour/database/repository/payment"
	"velour/models"
	"velour/services/booking"
	"velour/services/notification"
	"velour/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Orchestrator drives the payment lifecycle: initiating STK pushes for
// bookings and class bookings, resolving the asynchronous gateway callbacks
// and releasing attempts the gateway never resolved.
type Orchestrator interface {
	Checkout(ctx context.Context, req models.CheckoutRequest) (*models.PaymentAttempt, error)
	HandleCallback(ctx context.Context, env models.STKCallbackEnvelope) error
	ReleaseStale(ctx context.Context) (int64, error)
}

// staleAttemptAge is how long an attempt may stay unresolved before the
// periodic release fails it. STK prompts expire on the handset within about
// a minute, so an attempt this old will never get its callback.
const staleAttemptAge = 30 * time.Minute

// DefaultOrchestrator implements Orchestrator over the payment repository,
// the gateway client and the booking service.
type DefaultOrchestrator struct {
	Repo     paymentRepo.PaymentRepository
	Gateway  Gateway
	Bookings booking.BookingService
	Notifier notification.Notifier
	// Now is the clock; nil means time.Now. Tests override it.
	Now func() time.Time
}

func (o *DefaultOrchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

var msisdnPattern = regexp.MustCompile(`^2547\d{8}$`)

// normalizePhone rewrites local Kenyan formats (07XXXXXXXX, 7XXXXXXXX,
// +2547XXXXXXXX) to the canonical 2547XXXXXXXX form the gateway expects.
func normalizePhone(raw string) (string, error) {
	p := strings.TrimSpace(raw)
	p = strings.TrimPrefix(p, "+")
	p = strings.ReplaceAll(p, " ", "")
	switch {
	case strings.HasPrefix(p, "07") && len(p) == 10:
		p = "254" + p[1:]
	case strings.HasPrefix(p, "7") && len(p) == 9:
		p = "254" + p
	}
	if !msisdnPattern.MatchString(p) {
		return "", ValidationError{Field: "phoneNumber", Reason: "must be a Kenyan mobile number"}
	}
	return p, nil
}

// Checkout initiates an STK push for a pending booking or a class booking.
// The attempt row is inserted before the push so the one-active-attempt
// indexes serialize concurrent checkouts for the same target.
func (o *DefaultOrchestrator) Checkout(ctx context.Context, req models.CheckoutRequest) (*models.PaymentAttempt, error) {
	if (req.BookingID == "") == (req.ClassBookingID == "") {
		return nil, ValidationError{Field: "bookingId", Reason: "exactly one of bookingId or classBookingId is required"}
	}
	if req.Amount <= 0 {
		return nil, ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	phone, err := normalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}

	att := &models.PaymentAttempt{
		ID:     uuid.New().String(),
		Phone:  phone,
		Amount: req.Amount,
	}
	if req.BookingID != "" {
		b, err := o.Bookings.GetByID(ctx, req.BookingID)
		if err != nil {
			if errors.Is(err, booking.ErrNotFound) {
				return nil, ErrBookingNotFound
			}
			return nil, err
		}
		if b.Status != models.StatusPending {
			return nil, ErrBookingNotPayable
		}
		att.BookingID = b.ID
		att.AccountReference = b.ID
		att.Description = "Payment for " + b.Service.Name
	} else {
		cb, err := o.Bookings.GetClassBooking(ctx, req.ClassBookingID)
		if err != nil {
			if errors.Is(err, booking.ErrNotFound) {
				return nil, ErrClassBookingNotFound
			}
			return nil, err
		}
		att.ClassBookingID = cb.ID
		att.AccountReference = cb.ID
		att.Description = "Deposit for " + cb.Course.Name
	}

	if err := o.Repo.Create(ctx, att); err != nil {
		if errors.Is(err, paymentRepo.ErrActiveAttempt) {
			return nil, ErrPaymentInProgress
		}
		return nil, err
	}

	push, err := o.Gateway.InitiateSTKPush(ctx, phone, req.Amount, att.AccountReference, att.Description)
	if err != nil {
		if markErr := o.Repo.MarkFailed(ctx, att.ID, -1, err.Error()); markErr != nil {
			utils.GetLogger().Error("failed to mark attempt failed",
				zap.String("attemptId", att.ID), zap.Error(markErr))
		}
		return nil, err
	}

	if err := o.Repo.MarkAwaitingCallback(ctx, att.ID, push.MerchantRequestID, push.CheckoutRequestID); err != nil {
		// The push already went out but the attempt has no checkout
		// reference stored, so the callback cannot resolve it. It stays
		// active until ReleaseStale picks it up.
		utils.GetLogger().Error("push sent but attempt not marked awaiting callback",
			zap.String("attemptId", att.ID),
			zap.String("checkoutRequestId", push.CheckoutRequestID),
			zap.Error(err),
		)
		return nil, err
	}
	att.MerchantRequestID = push.MerchantRequestID
	att.CheckoutRequestID = push.CheckoutRequestID
	att.Status = models.PaymentAwaitingCallback

	utils.GetLogger().Info("payment initiated",
		zap.String("reference", att.AccountReference),
		zap.String("checkoutRequestId", push.CheckoutRequestID),
	)
	return att, nil
}

// HandleCallback resolves a gateway callback. Unknown checkout IDs and
// duplicate deliveries are acknowledged without effect so the gateway stops
// retrying. A success resolution confirms the booking and queues the
// customer's receipt email.
func (o *DefaultOrchestrator) HandleCallback(ctx context.Context, env models.STKCallbackEnvelope) error {
	cb := env.Body.StkCallback
	if cb.CheckoutRequestID == "" {
		utils.GetLogger().Warn("callback without checkout request id, ignoring")
		return nil
	}

	status := models.PaymentFailed
	if cb.ResultCode == 0 {
		status = models.PaymentConfirmed
	}

	att, err := o.Repo.Resolve(ctx, cb.CheckoutRequestID, status, cb.ResultCode, cb.ResultDesc, cb.Receipt())
	if err != nil {
		if errors.Is(err, paymentRepo.ErrNotFound) {
			utils.GetLogger().Warn("callback for unknown checkout request, ignoring",
				zap.String("checkoutRequestId", cb.CheckoutRequestID))
			return nil
		}
		if errors.Is(err, paymentRepo.ErrAlreadyResolved) {
			utils.GetLogger().Info("duplicate callback, ignoring",
				zap.String("checkoutRequestId", cb.CheckoutRequestID))
			return nil
		}
		return err
	}

	if status != models.PaymentConfirmed {
		utils.GetLogger().Info("payment failed",
			zap.String("reference", att.AccountReference),
			zap.Int("resultCode", cb.ResultCode),
			zap.String("resultDesc", cb.ResultDesc),
		)
		return nil
	}

	// Class bookings have no status machine; a confirmed deposit only
	// triggers the receipt email.
	if att.ClassBookingID != "" {
		email := ""
		if cbk, err := o.Bookings.GetClassBooking(ctx, att.ClassBookingID); err == nil {
			email = cbk.Customer.Email
		}
		o.Notifier.PaymentConfirmation(ctx, *att, email)
		utils.GetLogger().Info("payment confirmed",
			zap.String("classBookingId", att.ClassBookingID),
			zap.String("receipt", att.MpesaReceipt),
		)
		return nil
	}

	if err := o.Bookings.ConfirmPaid(ctx, att.BookingID); err != nil {
		// The attempt is already resolved; surface the inconsistency loudly
		// but keep the callback acknowledged.
		utils.GetLogger().Error("payment confirmed but booking update failed",
			zap.String("bookingId", att.BookingID),
			zap.Error(err),
		)
		return nil
	}

	email := ""
	if b, err := o.Bookings.GetByID(ctx, att.BookingID); err == nil {
		email = b.CustomerEmail
	}
	o.Notifier.PaymentConfirmation(ctx, *att, email)

	utils.GetLogger().Info("payment confirmed",
		zap.String("bookingId", att.BookingID),
		zap.String("receipt", att.MpesaReceipt),
	)
	return nil
}

// ReleaseStale fails attempts that have been active longer than
// staleAttemptAge. It runs on the periodic sweep so a lost callback or a
// checkout interrupted mid-write cannot block a target's next checkout
// forever.
func (o *DefaultOrchestrator) ReleaseStale(ctx context.Context) (int64, error) {
	released, err := o.Repo.ReleaseStale(ctx, o.now().Add(-staleAttemptAge))
	if err != nil {
		return 0, err
	}
	if released > 0 {
		utils.GetLogger().Info("released stale payment attempts", zap.Int64("count", released))
	}
	return released, nil
}
