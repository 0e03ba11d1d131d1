package plex

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid plex configuration")
)

// maxErrorBody caps how much of a response body is kept on an error
const maxErrorBody = 10 * 1024

// TransportError is returned when a request could not be completed,
// either at the network level or because the server answered with a
// non-2xx status. In the latter case Err is an *APIError.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("plex transport error: %s %s: status %d: %v", e.Method, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("plex transport error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a response body does not match the
// expected result shape. Body holds the (possibly truncated) raw response.
type DecodeError struct {
	ContentType ContentType
	Body        string
	Err         error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("plex decode error (%s): %v", e.ContentType, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// CancelledError is returned when the request context was cancelled or
// its deadline passed while the call was in flight.
type CancelledError struct {
	Err error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("plex request cancelled: %v", e.Err)
}

func (e *CancelledError) Unwrap() error {
	return e.Err
}

// APIError represents a non-2xx response from Plex
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("plex API error: status %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

func truncateBody(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody])
	}
	return string(body)
}
