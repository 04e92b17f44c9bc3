package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCancelled BookingStatus = "Cancelled"
)

// statusTransitions is the allowed transition table. Cancelled is terminal.
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
	StatusCancelled: {},
}

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransitionTo reports whether the transition s -> next is allowed.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ServiceRef is the denormalized service snapshot embedded in a booking.
type ServiceRef struct {
	Name        string  `bson:"name" json:"name"`
	Price       float64 `bson:"price" json:"price"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
}

// EmployeeRef is the denormalized employee snapshot embedded in a booking.
type EmployeeRef struct {
	Name string  `bson:"name" json:"name"`
	Fee  float64 `bson:"fee,omitempty" json:"fee,omitempty"`
}

// Booking represents a customer appointment for a service at a given slot.
// Date is "2006-01-02" and TimeSlot "15:04", both normalized to the business
// timezone at write time so lexicographic order matches chronological order.
type Booking struct {
	ID             string        `bson:"id" json:"id"`
	Service        ServiceRef    `bson:"service" json:"service"`
	Employee       EmployeeRef   `bson:"employee" json:"employee"`
	Date           string        `bson:"date" json:"date"`
	TimeSlot       string        `bson:"timeSlot" json:"timeSlot"`
	CustomerName   string        `bson:"customerName" json:"customerName"`
	CustomerEmail  string        `bson:"customerEmail" json:"customerEmail"`
	CustomerPhone  string        `bson:"customerPhone" json:"customerPhone"`
	NumberOfPeople int           `bson:"numberOfPeople" json:"numberOfPeople"`
	Message        string        `bson:"message,omitempty" json:"message,omitempty"`
	Status         BookingStatus `bson:"status" json:"status"`
	// Active mirrors status != Cancelled; the partial unique index on
	// (date, timeSlot) filters on it to enforce slot exclusivity.
	Active    bool      `bson:"active" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// BookingRequest is the customer-facing input for creating a booking.
type BookingRequest struct {
	Service        ServiceRef  `json:"service"`
	Employee       EmployeeRef `json:"employee"`
	Date           string      `json:"date"`
	TimeSlot       string      `json:"timeSlot"`
	CustomerName   string      `json:"customerName"`
	CustomerEmail  string      `json:"customerEmail"`
	CustomerPhone  string      `json:"customerPhone"`
	NumberOfPeople int         `json:"numberOfPeople"`
	Message        string      `json:"message"`
}
