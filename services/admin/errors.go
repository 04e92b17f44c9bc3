package admin

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password
	// so login responses do not reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidSecretKey signals registration with a wrong admin secret key.
	ErrInvalidSecretKey = errors.New("invalid admin secret key")
	// ErrEmailTaken signals registration with an already registered email.
	ErrEmailTaken = errors.New("an admin with this email already exists")
	// ErrNotFound signals an unknown admin id.
	ErrNotFound = errors.New("admin not found")
)

// ValidationError reports a rejected registration or profile input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
