package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("not found")
	ErrDuplicateIdentity   = errors.New("user already exists with this email or phone")
	ErrDuplicateEnrollment = errors.New("student is already enrolled in this course")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInactiveAccount     = errors.New("account is not active")
	ErrInvalidOrExpired    = errors.New("invalid or expired passcode")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrUnavailable         = errors.New("storage unavailable")
	ErrForbidden           = errors.New("access forbidden")
)

// Entity-specific not-found errors. Each one also matches ErrNotFound.
var (
	ErrUserNotFound       = notFound("user")
	ErrCourseNotFound     = notFound("course")
	ErrClassNotFound      = notFound("class")
	ErrEnrollmentNotFound = notFound("enrollment")
)

type notFoundError struct {
	entity string
}

func notFound(entity string) error { return &notFoundError{entity: entity} }

func (e *notFoundError) Error() string { return e.entity + " not found" }

func (e *notFoundError) Unwrap() error { return ErrNotFound }

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
