package geocoding_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/UnknownOlympus/pinpoint/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	logger := slog.Default()

	t.Run("create REST provider successfully", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:   geocoding.ProviderTypeGoogle,
			APIKey: "test-api-key",
			Logger: logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.NoError(t, err)
		_, ok := provider.(*geocoding.RESTProvider)
		assert.True(t, ok, "expected provider to be *RESTProvider")
	})

	t.Run("create SDK provider successfully", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:   geocoding.ProviderTypeGoogleSDK,
			APIKey: "test-api-key",
			Logger: logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.NoError(t, err)
		_, ok := provider.(*geocoding.SDKProvider)
		assert.True(t, ok, "expected provider to be *SDKProvider")
	})

	t.Run("providers without API key fail", func(t *testing.T) {
		for _, providerType := range []geocoding.ProviderType{geocoding.ProviderTypeGoogle, geocoding.ProviderTypeGoogleSDK} {
			provider, err := geocoding.NewProvider(geocoding.ProviderConfig{Type: providerType, Logger: logger})

			require.ErrorIs(t, err, geocoding.ErrMissingAPIKey)
			require.Nil(t, provider)
		}
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
			Type:   geocoding.ProviderTypeGoogle,
			APIKey: "test-api-key",
		})

		require.NoError(t, err)
		require.NotNil(t, provider)
	})

	t.Run("unsupported provider type", func(t *testing.T) {
		provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
			Type:   geocoding.ProviderType("nominatim"),
			Logger: logger,
		})

		require.Error(t, err)
		require.Nil(t, provider)
		assert.Contains(t, err.Error(), "unsupported provider type: nominatim")
	})
}

func TestNewProvider_BaseURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/geocode/json", r.URL.Path)
		assert.Equal(t, "test-api-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("address") == "denied" {
			_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid.","results":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":50.45,"lng":30.52}}}]}`))
	}))
	t.Cleanup(server.Close)

	for _, providerType := range []geocoding.ProviderType{geocoding.ProviderTypeGoogle, geocoding.ProviderTypeGoogleSDK} {
		t.Run(string(providerType), func(t *testing.T) {
			provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
				Type:    providerType,
				APIKey:  "test-api-key",
				BaseURL: server.URL + "/maps/api/geocode/json",
				Logger:  slog.Default(),
			})
			require.NoError(t, err)

			coords, err := provider.Geocode(t.Context(), "Kyiv")
			require.NoError(t, err)
			assert.InEpsilon(t, 50.45, coords.Latitude, 0.0001)
			assert.InEpsilon(t, 30.52, coords.Longitude, 0.0001)

			_, err = provider.Geocode(t.Context(), "denied")
			var statusErr *geocoding.StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, geocoding.StatusRequestDenied, statusErr.Status)
		})
	}
}

func TestStatus_Known(t *testing.T) {
	assert.True(t, geocoding.StatusOK.Known())
	assert.True(t, geocoding.StatusZeroResults.Known())
	assert.False(t, geocoding.Status("NOT_A_STATUS").Known())
	assert.Equal(t, "geocoding failed with status: ZERO_RESULTS",
		(&geocoding.StatusError{Status: geocoding.StatusZeroResults}).Error())
}
