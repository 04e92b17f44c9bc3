package paymentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoPaymentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// One unresolved attempt per booking at a time. The reference
		// fields are omitempty, so each index only covers attempts that
		// carry its kind of target.
		{
			Keys: bson.D{{Key: "bookingId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_active_booking_attempt").
				SetPartialFilterExpression(bson.M{
					"active":    true,
					"bookingId": bson.M{"$exists": true},
				}),
		},
		// Same guarantee for class bookings.
		{
			Keys: bson.D{{Key: "classBookingId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_active_class_attempt").
				SetPartialFilterExpression(bson.M{
					"active":         true,
					"classBookingId": bson.M{"$exists": true},
				}),
		},
		// Callback correlation key.
		{
			Keys:    bson.D{{Key: "checkoutRequestId", Value: 1}},
			Options: options.Index().SetName("checkout_request_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create payment indexes: %w", err)
	}
	return nil
}
