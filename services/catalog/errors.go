package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrServiceNotFound  = errors.New("service not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrCourseNotFound   = errors.New("course not found")
)

// ValidationError reports a rejected catalog input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
