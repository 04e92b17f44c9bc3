package bookingRepo

import (
	"context"
	"errors"
	"log"

	"velour/database"
	"velour/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors surfaced to the service layer.
var (
	ErrNotFound = errors.New("booking not found")
	// ErrSlotTaken is returned when an insert collides with the partial
	// unique index on (date, timeSlot) for active bookings.
	ErrSlotTaken = errors.New("time slot already booked")
	// ErrStaleStatus is returned when a conditional status update matched
	// no document because the stored status changed underneath us.
	ErrStaleStatus = errors.New("booking status changed concurrently")
)

type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetAll(ctx context.Context) ([]models.Booking, error)
	ListByCustomer(ctx context.Context, identifier string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) (*models.Booking, error)
	Delete(ctx context.Context, id string) error
	BookedSlots(ctx context.Context, date string) ([]string, error)
	DeleteExpired(ctx context.Context, today, nowSlot string) (int64, error)
	Count(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a MongoDB-backed BookingRepository.
// Index creation failure is fatal: slot exclusivity depends on the partial
// unique index existing before any insert is accepted.
func NewMongoBookingRepo() BookingRepository {
	repo := &mongoBookingRepo{coll: database.DB().Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		log.Fatalf("failed to create booking indexes: %v", err)
	}
	return repo
}
