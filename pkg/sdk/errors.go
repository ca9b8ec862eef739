package parksite

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is() to check; every *APIError unwraps to one.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrServer          = errors.New("server error")
)

// APIError is a non-2xx response decoded from the API error body.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("parksite: %d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("parksite: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap maps the API error code (or, failing that, the status) to a sentinel.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "bad_request":
		return ErrInvalidArgument
	case "not_found":
		return ErrNotFound
	}
	switch {
	case e.StatusCode == 404:
		return ErrNotFound
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return ErrInvalidArgument
	default:
		return ErrServer
	}
}
