package booking

import (
	"context"
	"time"

	bookingRepo "velour/database/repository/booking"
	classBookingRepo "velour/database/repository/classbooking"
	"velour/models"
	"velour/services/notification"
)

// BookingService is the booking lifecycle manager plus the availability
// checker and class-booking operations.
type BookingService interface {
	Create(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	GetAll(ctx context.Context) ([]models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListByCustomer(ctx context.Context, identifier string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (*models.Booking, error)
	ConfirmPaid(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	CheckAvailability(ctx context.Context, date string) ([]string, error)

	CreateClassBooking(ctx context.Context, req models.ClassBookingRequest) (*models.ClassBooking, error)
	ListClassBookings(ctx context.Context) ([]models.ClassBooking, error)
	GetClassBooking(ctx context.Context, id string) (*models.ClassBooking, error)
	DeleteClassBooking(ctx context.Context, id string) error

	Sweep(ctx context.Context) (int64, error)
}

// DefaultBookingService implements BookingService over the Mongo repositories.
type DefaultBookingService struct {
	Repo      bookingRepo.BookingRepository
	ClassRepo classBookingRepo.ClassBookingRepository
	Notifier  notification.Notifier
	// Loc is the business timezone all dates and slots are normalized to.
	Loc *time.Location
	// Now is the clock; nil means time.Now. Tests override it.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
