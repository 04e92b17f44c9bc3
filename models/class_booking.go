package models

import "time"

// CourseRef is the denormalized course snapshot embedded in a class booking.
type CourseRef struct {
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
}

// ClassCustomer identifies the customer enrolling in a course.
type ClassCustomer struct {
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
	Email     string `bson:"email" json:"email"`
	Phone     string `bson:"phone" json:"phone"`
}

// ClassBooking is a course enrollment. Courses are not capacity constrained,
// so there is no slot exclusivity here.
type ClassBooking struct {
	ID        string        `bson:"id" json:"id"`
	Course    CourseRef     `bson:"course" json:"course"`
	Customer  ClassCustomer `bson:"customer" json:"customer"`
	Message   string        `bson:"message,omitempty" json:"message,omitempty"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
}

// ClassBookingRequest is the input for creating a class booking.
type ClassBookingRequest struct {
	Course   CourseRef     `json:"course"`
	Customer ClassCustomer `json:"customer"`
	Message  string        `json:"message"`
}
