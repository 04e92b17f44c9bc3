package models

// Employee is a staff member who can be assigned to bookings.
type Employee struct {
	ID               string   `bson:"id" json:"id"`
	Name             string   `bson:"name" json:"name"`
	Email            string   `bson:"email" json:"email"`
	Phone            string   `bson:"phone" json:"phone"`
	AssignedServices []string `bson:"assignedServices" json:"assignedServices"`
	ProfilePicture   string   `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
}
