package models

import "time"

// Admin is a back-office account. Password holds the bcrypt hash and is never
// serialized in responses.
type Admin struct {
	ID             string    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Email          string    `bson:"email" json:"email"`
	Password       string    `bson:"password" json:"-"`
	Role           string    `bson:"role" json:"role"`
	ProfilePicture string    `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// AdminPatch lists the only fields an admin may change on their profile.
type AdminPatch struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePicture"`
}

// AnalyticsEntry is one labeled counter in the admin analytics summary.
type AnalyticsEntry struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}
