package classBookingRepo

import (
	"context"
	"errors"

	"velour/database"
	"velour/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("class booking not found")

type ClassBookingRepository interface {
	Create(ctx context.Context, cb *models.ClassBooking) error
	GetAll(ctx context.Context) ([]models.ClassBooking, error)
	GetByID(ctx context.Context, id string) (*models.ClassBooking, error)
	Delete(ctx context.Context, id string) error
}

type mongoClassBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoClassBookingRepo constructs a MongoDB-backed ClassBookingRepository.
func NewMongoClassBookingRepo() ClassBookingRepository {
	return &mongoClassBookingRepo{coll: database.DB().Collection("class_bookings")}
}
