package api

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a non-2xx answer from the server. Message is the text of the
// {"error": ...} body when the server sent one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return e.Message
}

// Unwrap lets errors.Is(err, ErrUnauthorized) match 401 answers.
func (e *Error) Unwrap() error {
	if e.Status == 401 {
		return ErrUnauthorized
	}
	return nil
}
