package api

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when a request outlives the client timeout.
	ErrTimeout = errors.New("request timeout")
	// ErrSessionExpired is returned for any 401. The stored token has been
	// cleared by the time the caller sees it.
	ErrSessionExpired = errors.New("session expired, please log in again")
	// ErrInvalidJSON is returned when the server answers with a body that is
	// not JSON.
	ErrInvalidJSON = errors.New("invalid JSON response")
)

// APIError is a non-2xx answer carrying the server's message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}
