package service

import (
	"errors"

	"github.com/UnknownOlympus/pinpoint/internal/geocoding"
)

// ErrMapContainerMissing is returned when the page has no element to mount the map into.
var ErrMapContainerMissing = errors.New("map element not found")

// AlertKind names the failure class an alert originates from.
type AlertKind string

const (
	AlertTransport   AlertKind = "transport"
	AlertService     AlertKind = "service"
	AlertIntegration AlertKind = "integration"
)

// Alert is the message shown to the user when a search fails.
type Alert struct {
	Kind    AlertKind `json:"kind"`
	Message string    `json:"error"`
}

// Classify picks the most specific user-facing message for err.
// A service status always wins over a transport message.
func Classify(err error) Alert {
	var statusErr *geocoding.StatusError
	if errors.As(err, &statusErr) {
		return Alert{Kind: AlertService, Message: string(statusErr.Status)}
	}

	if errors.Is(err, ErrMapContainerMissing) {
		return Alert{Kind: AlertIntegration, Message: "Map element not found"}
	}

	var transportErr *geocoding.TransportError
	if errors.As(err, &transportErr) {
		return Alert{Kind: AlertTransport, Message: transportErr.Message}
	}

	return Alert{Kind: AlertTransport, Message: err.Error()}
}
