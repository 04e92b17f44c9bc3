package booking

import "context"

// CheckAvailability returns the time slots already occupied by non-cancelled
// bookings on the given date, sorted chronologically. A date with no bookings
// yields an empty slice.
func (s *DefaultBookingService) CheckAvailability(ctx context.Context, date string) ([]string, error) {
	if date == "" {
		return nil, ValidationError{Field: "date", Reason: "date is required"}
	}
	normalized, err := normalizeDate(date, s.Loc)
	if err != nil {
		return nil, ValidationError{Field: "date", Reason: "expected YYYY-MM-DD"}
	}
	return s.Repo.BookedSlots(ctx, normalized)
}
