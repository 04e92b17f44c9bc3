package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "velour/database/repository/booking"
	classBookingRepo "velour/database/repository/classbooking"
	"velour/models"
	"velour/utils"

	"go.uber.org/zap"
)

// Create validates and persists a new booking. Slot exclusivity is decided by
// the insert itself (partial unique index), never by a prior read.
func (s *DefaultBookingService) Create(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	req, err := s.validateRequest(req)
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		Service:        req.Service,
		Employee:       req.Employee,
		Date:           req.Date,
		TimeSlot:       req.TimeSlot,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		NumberOfPeople: req.NumberOfPeople,
		Message:        req.Message,
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if s.Notifier != nil {
		s.Notifier.BookingConfirmation(ctx, *b)
	}
	return b, nil
}

func (s *DefaultBookingService) GetAll(ctx context.Context) ([]models.Booking, error) {
	return s.Repo.GetAll(ctx)
}

func (s *DefaultBookingService) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *DefaultBookingService) ListByCustomer(ctx context.Context, identifier string) ([]models.Booking, error) {
	return s.Repo.ListByCustomer(ctx, identifier)
}

// UpdateStatus applies a status transition, rejecting anything outside the
// transition table. The persisted update is conditional on the current status,
// so two racing transitions cannot both win.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (*models.Booking, error) {
	if !status.Valid() {
		return nil, ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", status)}
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(status) {
		return nil, InvalidTransitionError{From: current.Status, To: status}
	}

	updated, err := s.Repo.UpdateStatus(ctx, id, current.Status, status)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, bookingRepo.ErrStaleStatus):
			return nil, InvalidTransitionError{From: current.Status, To: status}
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	return updated, nil
}

// ConfirmPaid moves a booking to Confirmed on behalf of a successful payment.
// A booking that is already Confirmed counts as satisfied, which keeps
// callback replays harmless.
func (s *DefaultBookingService) ConfirmPaid(ctx context.Context, id string) error {
	_, err := s.UpdateStatus(ctx, id, models.StatusConfirmed)
	if err == nil {
		return nil
	}
	var transitionErr InvalidTransitionError
	if errors.As(err, &transitionErr) && transitionErr.From == models.StatusConfirmed {
		return nil
	}
	return err
}

func (s *DefaultBookingService) Delete(ctx context.Context, id string) error {
	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *DefaultBookingService) CreateClassBooking(ctx context.Context, req models.ClassBookingRequest) (*models.ClassBooking, error) {
	if req.Course.Name == "" {
		return nil, ValidationError{Field: "course", Reason: "course is required"}
	}
	if req.Customer.FirstName == "" || req.Customer.LastName == "" {
		return nil, ValidationError{Field: "customer", Reason: "first and last name are required"}
	}
	if !validEmail(req.Customer.Email) {
		return nil, ValidationError{Field: "customer.email", Reason: "invalid email format"}
	}
	if !validPhone(req.Customer.Phone) {
		return nil, ValidationError{Field: "customer.phone", Reason: "invalid phone number"}
	}

	cb := &models.ClassBooking{
		Course:   req.Course,
		Customer: req.Customer,
		Message:  req.Message,
	}
	if err := s.ClassRepo.Create(ctx, cb); err != nil {
		return nil, fmt.Errorf("failed to create class booking: %w", err)
	}

	if s.Notifier != nil {
		s.Notifier.ClassBookingConfirmation(ctx, *cb)
	}
	return cb, nil
}

func (s *DefaultBookingService) ListClassBookings(ctx context.Context) ([]models.ClassBooking, error) {
	return s.ClassRepo.GetAll(ctx)
}

func (s *DefaultBookingService) GetClassBooking(ctx context.Context, id string) (*models.ClassBooking, error) {
	cb, err := s.ClassRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, classBookingRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cb, nil
}

func (s *DefaultBookingService) DeleteClassBooking(ctx context.Context, id string) error {
	err := s.ClassRepo.Delete(ctx, id)
	if errors.Is(err, classBookingRepo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		utils.GetLogger().Warn("class booking delete failed", zap.String("id", id), zap.Error(err))
	}
	return err
}
