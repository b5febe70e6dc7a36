// Package common defines shared constants and sentinel errors used across
// client and server layers of TaskTracker. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// UserError pairs a sentinel with a message that is safe to show to the
// API caller. errors.Is matches the sentinel.
type UserError struct {
	Kind    error
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Kind
}

// NewUserError returns a UserError of the given kind.
func NewUserError(kind error, msg string) error {
	return &UserError{Kind: kind, Message: msg}
}

// Message returns the caller-facing text of err if it carries one, and
// fallback otherwise.
func Message(err error, fallback string) string {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Message
	}
	return fallback
}
