package geocoding

import (
	"errors"
	"fmt"
	"net/url"
)

// Status is the status token returned by the Google Geocoding API.
type Status string

// Statuses documented for the Geocoding API.
const (
	StatusOK             Status = "OK"
	StatusZeroResults    Status = "ZERO_RESULTS"
	StatusOverQueryLimit Status = "OVER_QUERY_LIMIT"
	StatusRequestDenied  Status = "REQUEST_DENIED"
	StatusInvalidRequest Status = "INVALID_REQUEST"
	StatusUnknownError   Status = "UNKNOWN_ERROR"
)

// Known reports whether s is one of the documented status tokens.
func (s Status) Known() bool {
	switch s {
	case StatusOK, StatusZeroResults, StatusOverQueryLimit,
		StatusRequestDenied, StatusInvalidRequest, StatusUnknownError:
		return true
	default:
		return false
	}
}

// StatusError is returned when the service answered with anything other than OK.
type StatusError struct {
	Status  Status // Status token as received.
	Message string // Optional error_message from the response body.
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("geocoding failed with status: %s (%s)", e.Status, e.Message)
	}

	return fmt.Sprintf("geocoding failed with status: %s", e.Status)
}

// TransportError is returned when no usable response was received from the service.
// Message never contains the request URL, since the URL carries the API key.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func newTransportError(err error) *TransportError {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &TransportError{Message: urlErr.Err.Error(), Err: err}
	}

	return &TransportError{Message: err.Error(), Err: err}
}
