package paymentRepo

import (
	"context"
	"errors"
	"log"
	"time"

	"velour/database"
	"velour/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound = errors.New("payment attempt not found")
	// ErrActiveAttempt is returned when an insert collides with the partial
	// unique index guarding one active attempt per booking.
	ErrActiveAttempt = errors.New("an active payment attempt already exists for this booking")
	// ErrAlreadyResolved is returned when a resolution matched no active
	// attempt, i.e. a duplicate callback delivery.
	ErrAlreadyResolved = errors.New("payment attempt already resolved")
)

type PaymentRepository interface {
	Create(ctx context.Context, att *models.PaymentAttempt) error
	GetByCheckoutID(ctx context.Context, checkoutID string) (*models.PaymentAttempt, error)
	MarkAwaitingCallback(ctx context.Context, id, merchantRequestID, checkoutRequestID string) error
	MarkFailed(ctx context.Context, id string, resultCode int, resultDesc string) error
	Resolve(ctx context.Context, checkoutID string, status models.PaymentStatus, resultCode int, resultDesc, receipt string) (*models.PaymentAttempt, error)
	ReleaseStale(ctx context.Context, cutoff time.Time) (int64, error)
}

type mongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo constructs a MongoDB-backed PaymentRepository. The
// partial unique index enforces at most one active attempt per booking, so
// index creation failure is fatal.
func NewMongoPaymentRepo() PaymentRepository {
	repo := &mongoPaymentRepo{coll: database.DB().Collection("payment_attempts")}
	if err := repo.ensureIndexes(); err != nil {
		log.Fatalf("failed to create payment indexes: %v", err)
	}
	return repo
}
