package domain

import (
	"errors"
	"strings"
)

var ErrUserExists = errors.New("user with this email already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrAccountDeactivated = errors.New("account is deactivated")
var ErrInvalidToken = errors.New("invalid token")
var ErrTooManyAttempts = errors.New("too many failed login attempts")

// ValidationError carries every violated input rule so clients can fix all
// of them in one round trip.
type ValidationError struct {
	Messages []string
}

func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return "validation error: " + strings.Join(e.Messages, "; ")
}
