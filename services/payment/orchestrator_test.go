package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	paymentRepo "velour/database/repository/payment"
	"velour/models"
	"velour/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePaymentRepo mirrors the one-active-attempt-per-target guarantee the
// partial unique indexes provide.
type fakePaymentRepo struct {
	attempts map[string]*models.PaymentAttempt

	createErr    error
	markAwaitErr error
	resolveErr   error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{attempts: make(map[string]*models.PaymentAttempt)}
}

func (f *fakePaymentRepo) Create(ctx context.Context, att *models.PaymentAttempt) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.attempts {
		if !existing.Active {
			continue
		}
		if (att.BookingID != "" && existing.BookingID == att.BookingID) ||
			(att.ClassBookingID != "" && existing.ClassBookingID == att.ClassBookingID) {
			return paymentRepo.ErrActiveAttempt
		}
	}
	att.Status = models.PaymentInitiated
	att.Active = true
	att.CreatedAt = time.Now()
	cp := *att
	f.attempts[att.ID] = &cp
	return nil
}

func (f *fakePaymentRepo) GetByCheckoutID(ctx context.Context, checkoutID string) (*models.PaymentAttempt, error) {
	for _, att := range f.attempts {
		if att.CheckoutRequestID == checkoutID {
			cp := *att
			return &cp, nil
		}
	}
	return nil, paymentRepo.ErrNotFound
}

func (f *fakePaymentRepo) MarkAwaitingCallback(ctx context.Context, id, merchantRequestID, checkoutRequestID string) error {
	if f.markAwaitErr != nil {
		return f.markAwaitErr
	}
	att, ok := f.attempts[id]
	if !ok {
		return paymentRepo.ErrNotFound
	}
	att.MerchantRequestID = merchantRequestID
	att.CheckoutRequestID = checkoutRequestID
	att.Status = models.PaymentAwaitingCallback
	return nil
}

func (f *fakePaymentRepo) MarkFailed(ctx context.Context, id string, resultCode int, resultDesc string) error {
	att, ok := f.attempts[id]
	if !ok {
		return paymentRepo.ErrNotFound
	}
	att.Status = models.PaymentFailed
	att.Active = false
	att.ResultCode = resultCode
	att.ResultDesc = resultDesc
	return nil
}

func (f *fakePaymentRepo) Resolve(ctx context.Context, checkoutID string, status models.PaymentStatus, resultCode int, resultDesc, receipt string) (*models.PaymentAttempt, error) {
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	for _, att := range f.attempts {
		if att.CheckoutRequestID != checkoutID {
			continue
		}
		if !att.Active {
			return nil, paymentRepo.ErrAlreadyResolved
		}
		att.Active = false
		att.Status = status
		att.ResultCode = resultCode
		att.ResultDesc = resultDesc
		att.MpesaReceipt = receipt
		cp := *att
		return &cp, nil
	}
	return nil, paymentRepo.ErrNotFound
}

func (f *fakePaymentRepo) ReleaseStale(ctx context.Context, cutoff time.Time) (int64, error) {
	var released int64
	for _, att := range f.attempts {
		if att.Active && att.CreatedAt.Before(cutoff) {
			att.Active = false
			att.Status = models.PaymentFailed
			released++
		}
	}
	return released, nil
}

type fakeGateway struct {
	pushErr error
	pushed  []string
}

func (g *fakeGateway) InitiateSTKPush(ctx context.Context, phone string, amount float64, accountRef, description string) (*models.STKPushResponse, error) {
	if g.pushErr != nil {
		return nil, g.pushErr
	}
	g.pushed = append(g.pushed, phone)
	return &models.STKPushResponse{
		MerchantRequestID: "mr-1",
		CheckoutRequestID: "cr-1",
		ResponseCode:      "0",
	}, nil
}

// stubBookings implements only the BookingService methods the orchestrator
// touches.
type stubBookings struct {
	booking.BookingService

	byID      map[string]*models.Booking
	classByID map[string]*models.ClassBooking
	confirmed []string
}

func (s *stubBookings) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := s.byID[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *stubBookings) GetClassBooking(ctx context.Context, id string) (*models.ClassBooking, error) {
	cb, ok := s.classByID[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	cp := *cb
	return &cp, nil
}

func (s *stubBookings) ConfirmPaid(ctx context.Context, id string) error {
	s.confirmed = append(s.confirmed, id)
	return nil
}

type recordingNotifier struct {
	payments []models.PaymentAttempt
	emails   []string
}

func (n *recordingNotifier) BookingConfirmation(ctx context.Context, b models.Booking)            {}
func (n *recordingNotifier) ClassBookingConfirmation(ctx context.Context, cb models.ClassBooking) {}
func (n *recordingNotifier) PaymentConfirmation(ctx context.Context, att models.PaymentAttempt, email string) {
	n.payments = append(n.payments, att)
	n.emails = append(n.emails, email)
}

func pendingBooking() *models.Booking {
	return &models.Booking{
		ID:            "bk-1",
		Service:       models.ServiceRef{Name: "Volume Lashes", Price: 4500},
		Status:        models.StatusPending,
		CustomerEmail: "achieng@example.com",
	}
}

func classBooking() *models.ClassBooking {
	return &models.ClassBooking{
		ID:     "cls-1",
		Course: models.CourseRef{Name: "Lash Tech Fundamentals", Price: 15000},
		Customer: models.ClassCustomer{
			FirstName: "Njeri",
			LastName:  "Kamau",
			Email:     "njeri@example.com",
			Phone:     "0722000000",
		},
	}
}

func newTestOrchestrator(repo *fakePaymentRepo, gw *fakeGateway, b *models.Booking) (*DefaultOrchestrator, *stubBookings, *recordingNotifier) {
	bookings := &stubBookings{
		byID:      map[string]*models.Booking{},
		classByID: map[string]*models.ClassBooking{},
	}
	if b != nil {
		bookings.byID[b.ID] = b
	}
	notifier := &recordingNotifier{}
	return &DefaultOrchestrator{
		Repo:     repo,
		Gateway:  gw,
		Bookings: bookings,
		Notifier: notifier,
	}, bookings, notifier
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"0712345678", "254712345678", true},
		{"712345678", "254712345678", true},
		{"+254712345678", "254712345678", true},
		{"254712345678", "254712345678", true},
		{"0712 345 678", "254712345678", true},
		{"0112345678", "", false},
		{"12345", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := normalizePhone(tc.in)
		if tc.ok {
			require.NoErrorf(t, err, "input %q", tc.in)
			assert.Equal(t, tc.want, got)
		} else {
			assert.Errorf(t, err, "input %q", tc.in)
		}
	}
}

func TestCheckoutHappyPath(t *testing.T) {
	repo := newFakePaymentRepo()
	gw := &fakeGateway{}
	orch, _, _ := newTestOrchestrator(repo, gw, pendingBooking())

	att, err := orch.Checkout(context.Background(), models.CheckoutRequest{
		BookingID: "bk-1",
		Phone:     "0712345678",
		Amount:    4500,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentAwaitingCallback, att.Status)
	assert.Equal(t, "cr-1", att.CheckoutRequestID)
	assert.Equal(t, []string{"254712345678"}, gw.pushed)
}

func TestCheckoutValidation(t *testing.T) {
	repo := newFakePaymentRepo()
	orch, _, _ := newTestOrchestrator(repo, &fakeGateway{}, pendingBooking())

	var vErr ValidationError
	_, err := orch.Checkout(context.Background(), models.CheckoutRequest{Phone: "0712345678", Amount: 100})
	assert.ErrorAs(t, err, &vErr)

	// Both targets at once is as invalid as neither.
	_, err = orch.Checkout(context.Background(), models.CheckoutRequest{
		BookingID: "bk-1", ClassBookingID: "cls-1", Phone: "0712345678", Amount: 100,
	})
	assert.ErrorAs(t, err, &vErr)

	_, err = orch.Checkout(context.Background(), models.CheckoutRequest{BookingID: "bk-1", Phone: "0712345678"})
	assert.ErrorAs(t, err, &vErr)

	_, err = orch.Checkout(context.Background(), models.CheckoutRequest{BookingID: "bk-1", Phone: "nope", Amount: 100})
	assert.ErrorAs(t, err, &vErr)
}

func TestCheckoutClassBooking(t *testing.T) {
	repo := newFakePaymentRepo()
	gw := &fakeGateway{}
	orch, bookings, _ := newTestOrchestrator(repo, gw, nil)
	bookings.classByID["cls-1"] = classBooking()

	att, err := orch.Checkout(context.Background(), models.CheckoutRequest{
		ClassBookingID: "cls-1", Phone: "0712345678", Amount: 5000,
	})
	require.NoError(t, err)
	assert.Equal(t, "cls-1", att.ClassBookingID)
	assert.Empty(t, att.BookingID)
	assert.Equal(t, "Deposit for Lash Tech Fundamentals", att.Description)
	assert.Equal(t, models.PaymentAwaitingCallback, att.Status)

	// A second deposit attempt for the same class booking is blocked.
	_, err = orch.Checkout(context.Background(), models.CheckoutRequest{
		ClassBookingID: "cls-1", Phone: "0712345678", Amount: 5000,
	})
	assert.ErrorIs(t, err, ErrPaymentInProgress)
}

func TestCheckoutClassBookingNotFound(t *testing.T) {
	repo := newFakePaymentRepo()
	orch, _, _ := newTestOrchestrator(repo, &fakeGateway{}, nil)

	_, err := orch.Checkout(context.Background(), models.CheckoutRequest{
		ClassBookingID: "missing", Phone: "0712345678", Amount: 5000,
	})
	assert.ErrorIs(t, err, ErrClassBookingNotFound)
}

func TestCheckoutBookingStates(t *testing.T) {
	repo := newFakePaymentRepo()
	orch, _, _ := newTestOrchestrator(repo, &fakeGateway{}, pendingBooking())

	_, err := orch.Checkout(context.Background(), models.CheckoutRequest{
		BookingID: "missing", Phone: "0712345678", Amount: 100,
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	confirmed := pendingBooking()
	confirmed.ID = "bk-2"
	confirmed.Status = models.StatusConfirmed
	orch2, _, _ := newTestOrchestrator(newFakePaymentRepo(), &fakeGateway{}, confirmed)
	_, err = orch2.Checkout(context.Background(), models.CheckoutRequest{
		BookingID: "bk-2", Phone: "0712345678", Amount: 100,
	})
	assert.ErrorIs(t, err, ErrBookingNotPayable)
}

func TestCheckoutActiveAttempt(t *testing.T) {
	repo := newFakePaymentRepo()
	repo.createErr = paymentRepo.ErrActiveAttempt
	orch, _, _ := newTestOrchestrator(repo, &fakeGateway{}, pendingBooking())

	_, err := orch.Checkout(context.Background(), models.CheckoutRequest{
		BookingID: "bk-1", Phone: "0712345678", Amount: 100,
	})
	assert.ErrorIs(t, err, ErrPaymentInProgress)
}

func TestCheckoutGatewayFailureMarksAttemptFailed(t *testing.T) {
	repo := newFakePaymentRepo()
	gw := &fakeGateway{pushErr: GatewayError{Code: "500.001.1001", Description: "unable to lock subscriber"}}
	orch, _, _ := newTestOrchestrator(repo, gw, pendingBooking())

	_, err := orch.Checkout(context.Background(), models.CheckoutRequest{
		BookingID: "bk-1", Phone: "0712345678", Amount: 100,
	})
	var gwErr GatewayError
	require.ErrorAs(t, err, &gwErr)

	require.Len(t, repo.attempts, 1)
	for _, att := range repo.attempts {
		assert.Equal(t, models.PaymentFailed, att.Status)
		assert.False(t, att.Active)
	}
}

func successCallback(checkoutID string) models.STKCallbackEnvelope {
	var env models.STKCallbackEnvelope
	env.Body.StkCallback = models.STKCallback{
		MerchantRequestID: "mr-1",
		CheckoutRequestID: checkoutID,
		ResultCode:        0,
		ResultDesc:        "The service request is processed successfully.",
	}
	env.Body.StkCallback.CallbackMetadata.Item = []models.STKCallbackItem{
		{Name: "Amount", Value: 4500.0},
		{Name: "MpesaReceiptNumber", Value: "TIJ3RT61XY"},
	}
	return env
}

func TestHandleCallbackSuccess(t *testing.T) {
	repo := newFakePaymentRepo()
	gw := &fakeGateway{}
	orch, bookings, notifier := newTestOrchestrator(repo, gw, pendingBooking())

	_, err := orch.Checkout(context.Background(), models.CheckoutRequest{
		BookingID: "bk-1", Phone: "0712345678", Amount: 4500,
	})
	require.NoError(t, err)

	require.NoError(t, orch.HandleCallback(context.Background(), successCallback("cr-1")))

	assert.Equal(t, []string{"bk-1"}, bookings.confirmed)
	require.Len(t, notifier.payments, 1)
	assert.Equal(t, "TIJ3RT61XY", notifier.payments[0].MpesaReceipt)
	assert.Equal(t, []string{"achieng@example.com"}, notifier.emails)
}

func TestHandleCallbackClassBooking(t *testing.T) {
	repo := newFakePaymentRepo()
	orch, bookings, notifier := newTestOrchestrator(repo, &fakeGateway{}, nil)
	bookings.classByID["cls-1"] = classBooking()

	_, err := orch.Checkout(context.Background(), models.CheckoutRequest{
		ClassBookingID: "cls-1", Phone: "0712345678", Amount: 5000,
	})
	require.NoError(t, err)

	require.NoError(t, orch.HandleCallback(context.Background(), successCallback("cr-1")))

	// No appointment status machine is involved; the deposit only
	// triggers the receipt email.
	assert.Empty(t, bookings.confirmed)
	require.Len(t, notifier.payments, 1)
	assert.Equal(t, []string{"njeri@example.com"}, notifier.emails)

	att, err := repo.GetByCheckoutID(context.Background(), "cr-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentConfirmed, att.Status)
	assert.False(t, att.Active)
}

func TestHandleCallbackDuplicate(t *testing.T) {
	repo := newFakePaymentRepo()
	orch, bookings, notifier := newTestOrchestrator(repo, &fakeGateway{}, pendingBooking())

	_, err := orch.Checkout(context.Background(), models.CheckoutRequest{
		BookingID: "bk-1", Phone: "0712345678", Amount: 4500,
	})
	require.NoError(t, err)

	require.NoError(t, orch.HandleCallback(context.Background(), successCallback("cr-1")))
	// A replayed delivery resolves nothing and triggers no side effects.
	require.NoError(t, orch.HandleCallback(context.Background(), successCallback("cr-1")))

	assert.Equal(t, []string{"bk-1"}, bookings.confirmed)
	assert.Len(t, notifier.payments, 1)
}

func TestHandleCallbackUnknownCheckout(t *testing.T) {
	repo := newFakePaymentRepo()
	orch, bookings, _ := newTestOrchestrator(repo, &fakeGateway{}, pendingBooking())

	require.NoError(t, orch.HandleCallback(context.Background(), successCallback("cr-unknown")))
	assert.Empty(t, bookings.confirmed)
}

func TestHandleCallbackFailure(t *testing.T) {
	repo := newFakePaymentRepo()
	orch, bookings, notifier := newTestOrchestrator(repo, &fakeGateway{}, pendingBooking())

	_, err := orch.Checkout(context.Background(), models.CheckoutRequest{
		BookingID: "bk-1", Phone: "0712345678", Amount: 4500,
	})
	require.NoError(t, err)

	env := successCallback("cr-1")
	env.Body.StkCallback.ResultCode = 1032
	env.Body.StkCallback.ResultDesc = "Request cancelled by user"
	env.Body.StkCallback.CallbackMetadata.Item = nil

	require.NoError(t, orch.HandleCallback(context.Background(), env))

	assert.Empty(t, bookings.confirmed)
	assert.Empty(t, notifier.payments)
	att, err := repo.GetByCheckoutID(context.Background(), "cr-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, att.Status)
	assert.Equal(t, 1032, att.ResultCode)
}

func TestReleaseStaleUnblocksCheckout(t *testing.T) {
	repo := newFakePaymentRepo()
	gw := &fakeGateway{}
	orch, _, _ := newTestOrchestrator(repo, gw, pendingBooking())

	// The push goes out but the awaiting-callback write fails, leaving an
	// active attempt with no checkout reference.
	repo.markAwaitErr = errors.New("write timeout")
	req := models.CheckoutRequest{BookingID: "bk-1", Phone: "0712345678", Amount: 4500}
	_, err := orch.Checkout(context.Background(), req)
	require.Error(t, err)
	require.Len(t, repo.attempts, 1)
	for _, att := range repo.attempts {
		assert.True(t, att.Active)
		assert.Empty(t, att.CheckoutRequestID)
	}
	repo.markAwaitErr = nil

	// The stranded attempt blocks the booking's next checkout.
	_, err = orch.Checkout(context.Background(), req)
	assert.ErrorIs(t, err, ErrPaymentInProgress)

	orch.Now = func() time.Time { return time.Now().Add(time.Hour) }
	released, err := orch.ReleaseStale(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), released)

	orch.Now = nil
	_, err = orch.Checkout(context.Background(), req)
	require.NoError(t, err)
}
