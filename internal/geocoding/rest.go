package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/UnknownOlympus/pinpoint/internal/models"
)

// GoogleGeocodeURL is the Google Geocoding API JSON endpoint.
const GoogleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// RESTProvider calls the Google Geocoding API directly over HTTP and keeps
// the status token of every answer, so callers can report it verbatim.
type RESTProvider struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the Geocoding API
	apiKey  string       // API key with geocoding access
	log     *slog.Logger // Logger for logging operations
}

// geocodeResponse is the subset of the Geocoding API envelope we use.
type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	Status       Status `json:"status"`
	ErrorMessage string `json:"error_message"`
}

// NewRESTProvider creates a provider for the public Google endpoint.
// A zero timeout leaves the request bounded only by its context.
func NewRESTProvider(apiKey string, timeout time.Duration, log *slog.Logger) *RESTProvider {
	return &RESTProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: GoogleGeocodeURL,
		apiKey:  apiKey,
		log:     log,
	}
}

// NewRESTProviderWithClient allows injecting custom HTTP client and endpoint.
func NewRESTProviderWithClient(client HTTPClient, baseURL, apiKey string, log *slog.Logger) *RESTProvider {
	return &RESTProvider{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
		log:     log,
	}
}

// Geocode resolves address with a single GET request. The address is sent as-is,
// empty strings included; the service decides whether it is valid.
func (rp *RESTProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	rp.log.DebugContext(ctx, "Geocoding using Google Geocoding API", "address", address)

	reqURL, err := url.Parse(rp.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("address", address)
	query.Set("key", rp.apiKey)
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := rp.client.Do(req)
	if err != nil {
		return nil, newTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(err)
	}

	var result geocodeResponse
	decodeErr := json.Unmarshal(body, &result)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		rp.log.ErrorContext(ctx, "Geocoding API error", "status", resp.StatusCode, "body", string(body))
		if decodeErr == nil && result.Status != "" {
			return nil, &StatusError{Status: result.Status, Message: result.ErrorMessage}
		}

		return nil, &TransportError{Message: fmt.Sprintf("request failed with status code %d", resp.StatusCode)}
	}

	if decodeErr != nil {
		return nil, &TransportError{Message: "malformed geocoding response", Err: decodeErr}
	}

	// Bodies like {} or null decode cleanly but carry no status to report.
	if result.Status == "" {
		return nil, &TransportError{Message: "malformed geocoding response"}
	}

	if result.Status != StatusOK {
		return nil, &StatusError{Status: result.Status, Message: result.ErrorMessage}
	}

	// OK without candidates carries nothing to place on a map.
	if len(result.Results) == 0 {
		return nil, &StatusError{Status: StatusZeroResults}
	}

	location := result.Results[0].Geometry.Location
	rp.log.DebugContext(ctx, "Geocoding API found result", "address", address, "lat", location.Lat, "lng", location.Lng)

	return &models.Coordinates{Latitude: location.Lat, Longitude: location.Lng}, nil
}
