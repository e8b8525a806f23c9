// Package errors defines the error values returned by the backend client.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents an error response from the factory backend
type APIError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("factory API error (%d): %s - %s", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("factory API error (%d): %s", e.StatusCode, e.Message)
}

// Is matches any APIError with the same status code, so wrapped responses
// compare equal to the sentinels below.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.StatusCode == e.StatusCode
}

// NewAPIError creates a new API error
func NewAPIError(statusCode int, message, details string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
		Details:    details,
	}
}

// Common error types
var (
	ErrBadRequest     = &APIError{StatusCode: http.StatusBadRequest, Message: "Bad request"}
	ErrUnauthorized   = &APIError{StatusCode: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden      = &APIError{StatusCode: http.StatusForbidden, Message: "Forbidden"}
	ErrNotFound       = &APIError{StatusCode: http.StatusNotFound, Message: "Resource not found"}
	ErrInternalServer = &APIError{StatusCode: http.StatusInternalServerError, Message: "Internal server error"}
)

// IsAPIError checks if an error is an API error
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsUnauthorized checks if an error is a 401 response
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNotFound checks if an error is a 404 response
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// NetworkError represents a transport failure before any response arrived
type NetworkError struct {
	Operation string
	URL       string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s %s: %v", e.Operation, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetworkError checks if an error is a network error
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
