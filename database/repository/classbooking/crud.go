package classBookingRepo

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

func (r *mongoClassBookingRepo) Create(ctx context.Context, cb *models.ClassBooking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if cb.ID == "" {
		cb.ID = uuid.New().String()
	}
	cb.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, cb); err != nil {
		return fmt.Errorf("insert class booking failed: %w", err)
	}
	return nil
}

func (r *mongoClassBookingRepo) GetAll(ctx context.Context) ([]models.ClassBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch class bookings failed: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.ClassBooking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode class bookings failed: %w", err)
	}
	return bookings, nil
}

func (r *mongoClassBookingRepo) GetByID(ctx context.Context, id string) (*models.ClassBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cb models.ClassBooking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&cb)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find class booking failed: %w", err)
	}
	return &cb, nil
}

func (r *mongoClassBookingRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete class booking failed: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
