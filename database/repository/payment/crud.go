package paymentRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"velour/models"
)

func (r *mongoPaymentRepo) Create(ctx context.Context, att *models.PaymentAttempt) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if att.ID == "" {
		att.ID = uuid.New().String()
	}
	att.Status = models.PaymentInitiated
	att.Active = true
	att.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, att); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrActiveAttempt
		}
		return fmt.Errorf("insert payment attempt failed: %w", err)
	}
	return nil
}

func (r *mongoPaymentRepo) GetByCheckoutID(ctx context.Context, checkoutID string) (*models.PaymentAttempt, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var att models.PaymentAttempt
	err := r.coll.FindOne(ctx, bson.M{"checkoutRequestId": checkoutID}).Decode(&att)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find payment attempt failed: %w", err)
	}
	return &att, nil
}

func (r *mongoPaymentRepo) MarkAwaitingCallback(ctx context.Context, id, merchantRequestID, checkoutRequestID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":            models.PaymentAwaitingCallback,
		"merchantRequestId": merchantRequestID,
		"checkoutRequestId": checkoutRequestID,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("mark awaiting callback failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoPaymentRepo) MarkFailed(ctx context.Context, id string, resultCode int, resultDesc string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":     models.PaymentFailed,
		"active":     false,
		"resultCode": resultCode,
		"resultDesc": resultDesc,
		"resolvedAt": now,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("mark payment failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Resolve finalizes an attempt by its checkout reference. The filter requires
// active:true, so only the first delivery of a callback matches; duplicates
// get ErrAlreadyResolved. This single conditional update is what makes
// callback handling idempotent.
func (r *mongoPaymentRepo) Resolve(ctx context.Context, checkoutID string, status models.PaymentStatus, resultCode int, resultDesc, receipt string) (*models.PaymentAttempt, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"checkoutRequestId": checkoutID, "active": true}
	update := bson.M{"$set": bson.M{
		"status":       status,
		"active":       false,
		"resultCode":   resultCode,
		"resultDesc":   resultDesc,
		"mpesaReceipt": receipt,
		"resolvedAt":   now,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.PaymentAttempt
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			return nil, fmt.Errorf("resolve payment attempt failed: %w", err)
		}
		if _, getErr := r.GetByCheckoutID(ctx, checkoutID); getErr != nil {
			return nil, getErr
		}
		return nil, ErrAlreadyResolved
	}
	return &updated, nil
}

// ReleaseStale fails every attempt still active past the cutoff. An attempt
// can be stranded active when the awaiting-callback write fails after a
// successful push, or when the gateway never delivers a callback; either way
// the partial unique index would block the target's next checkout until the
// attempt is released.
func (r *mongoPaymentRepo) ReleaseStale(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":     models.PaymentFailed,
		"active":     false,
		"resultDesc": "expired without resolution",
		"resolvedAt": time.Now(),
	}}
	res, err := r.coll.UpdateMany(ctx, bson.M{"active": true, "createdAt": bson.M{"$lt": cutoff}}, update)
	if err != nil {
		return 0, fmt.Errorf("release stale attempts failed: %w", err)
	}
	return res.ModifiedCount, nil
}
