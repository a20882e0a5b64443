package domain

import (
	"errors"
	"strings"
)

var (
	ErrValidationFailed       = errors.New("validation failed")
	ErrDuplicateUsername      = errors.New("username already exists")
	ErrDuplicateClub          = errors.New("club already exists")
	ErrUnknownClub            = errors.New("club not found")
	ErrAuthenticationRejected = errors.New("authentication rejected")
	ErrMissingClub            = errors.New("club is required for member login")
	ErrUserNotFound           = errors.New("user not found")
	ErrEventNotFound          = errors.New("event not found")
	ErrForbidden              = errors.New("access forbidden")
)

// Gate outcomes. Both mean "go back to the login screen".
var (
	ErrNoSession   = errors.New("no active session")
	ErrWrongScreen = errors.New("session role does not match screen")
)

// ValidationError lists the required fields that were missing or empty.
// It matches ErrValidationFailed under errors.Is.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, ", ") + " required"
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }
