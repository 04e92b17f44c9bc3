package booking

import (
	"regexp"
	"strings"
	"time"

	"velour/models"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{9,15}$`)
)

// slotLayouts are the accepted client formats for a time slot. Whatever comes
// in, the stored form is zero-padded 24h "15:04" so string order is
// chronological order.
var slotLayouts = []string{"15:04", "3:04 PM", "15:04:05"}

// normalizeDate parses a calendar date and re-renders it in the business
// timezone. RFC 3339 timestamps are accepted and truncated to their date.
func normalizeDate(raw string, loc *time.Location) (string, error) {
	if t, err := time.ParseInLocation("2006-01-02", raw, loc); err == nil {
		return t.Format("2006-01-02"), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return "", err
	}
	return t.In(loc).Format("2006-01-02"), nil
}

// normalizeSlot parses a time-of-day and renders it as "15:04".
func normalizeSlot(raw string) (string, error) {
	var lastErr error
	for _, layout := range slotLayouts {
		t, err := time.Parse(layout, strings.TrimSpace(raw))
		if err == nil {
			return t.Format("15:04"), nil
		}
		lastErr = err
	}
	return "", lastErr
}

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func validPhone(phone string) bool {
	return phonePattern.MatchString(strings.ReplaceAll(phone, " ", ""))
}

// validateRequest checks required fields and formats, returning the request
// with date and slot normalized.
func (s *DefaultBookingService) validateRequest(req models.BookingRequest) (models.BookingRequest, error) {
	if req.Service.Name == "" {
		return req, ValidationError{Field: "service", Reason: "service is required"}
	}
	if req.Employee.Name == "" {
		return req, ValidationError{Field: "employee", Reason: "employee is required"}
	}
	if req.Date == "" {
		return req, ValidationError{Field: "date", Reason: "date is required"}
	}
	if req.TimeSlot == "" {
		return req, ValidationError{Field: "timeSlot", Reason: "time slot is required"}
	}
	if !validEmail(req.CustomerEmail) {
		return req, ValidationError{Field: "customerEmail", Reason: "invalid email format"}
	}
	if !validPhone(req.CustomerPhone) {
		return req, ValidationError{Field: "customerPhone", Reason: "invalid phone number"}
	}
	if req.NumberOfPeople < 1 {
		return req, ValidationError{Field: "numberOfPeople", Reason: "number of people must be a positive integer"}
	}

	date, err := normalizeDate(req.Date, s.Loc)
	if err != nil {
		return req, ValidationError{Field: "date", Reason: "expected YYYY-MM-DD"}
	}
	slot, err := normalizeSlot(req.TimeSlot)
	if err != nil {
		return req, ValidationError{Field: "timeSlot", Reason: "expected HH:MM"}
	}
	req.Date = date
	req.TimeSlot = slot
	return req, nil
}
