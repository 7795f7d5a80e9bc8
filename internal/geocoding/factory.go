package geocoding

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of geocoding provider.
type ProviderType string

const (
	// ProviderTypeGoogle calls the Google Geocoding API over plain HTTP.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeGoogleSDK calls the Google Geocoding API through googlemaps.github.io/maps.
	ProviderTypeGoogleSDK ProviderType = "google-sdk"
)

// ErrMissingAPIKey is returned by NewProvider when no API key is configured.
var ErrMissingAPIKey = errors.New("API key is required for Google provider")

// ProviderConfig holds configuration for creating a geocoding provider.
type ProviderConfig struct {
	Type    ProviderType  // Type of provider to create
	APIKey  string        // API key for the Geocoding API
	BaseURL string        // Endpoint override; empty means the public Google endpoint
	Timeout time.Duration // Request timeout; zero means none
	Logger  *slog.Logger  // Logger for the provider
}

// NewProvider creates a geocoding provider based on the provided configuration.
//
// Supported provider types:
// - "google": direct HTTP client for the Geocoding API
// - "google-sdk": Google Maps client library
//
// Returns an error if the provider type is unsupported or if provider creation fails.
func NewProvider(config ProviderConfig) (Provider, error) {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	switch config.Type {
	case ProviderTypeGoogle:
		return newRESTProvider(config)
	case ProviderTypeGoogleSDK:
		return newSDKProvider(config)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newRESTProvider creates the plain HTTP provider.
func newRESTProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	if config.BaseURL == "" {
		return NewRESTProvider(config.APIKey, config.Timeout, config.Logger), nil
	}

	client := &http.Client{Timeout: config.Timeout}

	return NewRESTProviderWithClient(client, config.BaseURL, config.APIKey, config.Logger), nil
}

// newSDKProvider creates a Google Maps client library provider.
func newSDKProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	// The library rate limits by default; lookups here are never throttled.
	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
		maps.WithHTTPClient(&http.Client{Timeout: config.Timeout}),
		maps.WithRateLimit(0),
	}

	// The library appends the API path itself, so only scheme and host are kept.
	if config.BaseURL != "" {
		endpoint, err := url.Parse(config.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse base URL: %w", err)
		}
		clientOpts = append(clientOpts, maps.WithBaseURL(endpoint.Scheme+"://"+endpoint.Host))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewSDKProvider(client, config.Logger), nil
}
