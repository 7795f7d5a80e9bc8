package geocoding

import (
	"context"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/pinpoint/internal/models"
	"googlemaps.github.io/maps"
)

// SDKProvider geocodes through the official Google Maps client library.
type SDKProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

// GoogleAPIClient is the part of *maps.Client used by SDKProvider.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewSDKProvider wraps an existing Google Maps client.
func NewSDKProvider(client GoogleAPIClient, log *slog.Logger) *SDKProvider {
	return &SDKProvider{client: client, log: log}
}

// Geocode returns the coordinates of the first result for address.
//
// The library swallows ZERO_RESULTS and folds other statuses into its error text,
// so both are translated back into *StatusError here.
func (sp *SDKProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	sp.log.DebugContext(ctx, "Geocoding using Google Maps client", "address", address)

	// The library refuses empty requests client-side; the service answers them with INVALID_REQUEST.
	if address == "" {
		return nil, &StatusError{Status: StatusInvalidRequest}
	}

	req := maps.GeocodingRequest{Address: address}
	results, err := sp.client.Geocode(ctx, &req)
	if err != nil {
		if statusErr := parseLibraryStatus(err); statusErr != nil {
			return nil, statusErr
		}

		return nil, newTransportError(err)
	}

	if len(results) == 0 {
		return nil, &StatusError{Status: StatusZeroResults}
	}
	location := results[0].Geometry.Location

	return &models.Coordinates{Longitude: location.Lng, Latitude: location.Lat}, nil
}

// parseLibraryStatus extracts the status from errors shaped "maps: STATUS - message".
func parseLibraryStatus(err error) *StatusError {
	rest, ok := strings.CutPrefix(err.Error(), "maps: ")
	if !ok {
		return nil
	}

	token, message, _ := strings.Cut(rest, " - ")
	status := Status(token)
	if !status.Known() {
		return nil
	}

	return &StatusError{Status: status, Message: message}
}
