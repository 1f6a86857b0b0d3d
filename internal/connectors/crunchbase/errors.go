package crunchbase

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidOrgURL indicates a URL that does not point at a Crunchbase
// organization.
var ErrInvalidOrgURL = errors.New("crunchbase: invalid organization url")

// ErrResponseTooLarge is returned when a response body exceeds the size
// the client reads.
var ErrResponseTooLarge = errors.New("crunchbase: response body too large")

// APIError represents a non-success Crunchbase API response.
type APIError struct {
	StatusCode int
	Message    string
	Permalink  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("crunchbase: API error %d (organization: %s)", e.StatusCode, e.Permalink)
	}
	return fmt.Sprintf("crunchbase: API error %d: %s (organization: %s)", e.StatusCode, e.Message, e.Permalink)
}

// IsNotFound returns true if the error indicates a missing organization.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsRateLimited returns true if the error indicates the quota was exceeded.
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}

// IsUnauthorized returns true if the API key was rejected.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

func hasStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}
