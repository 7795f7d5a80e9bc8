package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/pinpoint/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MustLoad(t *testing.T) {
	t.Setenv("PINPOINT_ENV", "local")
	t.Setenv("PINPOINT_PORT", "9000")
	t.Setenv("PINPOINT_PROVIDER_KEY", "testAPIKey")
	t.Setenv("PINPOINT_GEOCODER_TIMEOUT", "3s")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 8081, cfg.HealthPort)
	assert.Equal(t, "google", cfg.ProviderType)
	assert.Equal(t, "testAPIKey", cfg.APIKey)
	assert.Equal(t, "testAPIKey", cfg.BrowserKey)
	assert.Empty(t, cfg.GeocoderURL)
	assert.Equal(t, 3*time.Second, cfg.GeocoderTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestMustLoad_Defaults(t *testing.T) {
	t.Setenv("PINPOINT_PROVIDER_KEY", "testAPIKey")
	t.Setenv("PINPOINT_BROWSER_KEY", "browserKey")

	cfg := config.MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "browserKey", cfg.BrowserKey)
	assert.Zero(t, cfg.GeocoderTimeout)
}

func TestMustLoad_DotEnvFile(t *testing.T) {
	defer filet.CleanUp(t)

	dir := filet.TmpDir(t, "")
	filet.File(t, filepath.Join(dir, ".env"), "PINPOINT_PROVIDER_KEY=fromDotEnv\nPINPOINT_PROVIDER_TYPE=google-sdk\n")
	t.Chdir(dir)

	// godotenv never overrides variables that are already set, so start from unset ones
	// that t.Setenv will restore afterwards.
	for _, key := range []string{"PINPOINT_PROVIDER_KEY", "PINPOINT_PROVIDER_TYPE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg := config.MustLoad()

	assert.Equal(t, "fromDotEnv", cfg.APIKey)
	assert.Equal(t, "google-sdk", cfg.ProviderType)
}

func TestMustLoad_PortError(t *testing.T) {
	t.Setenv("PINPOINT_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for web server from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_HealthPortError(t *testing.T) {
	t.Setenv("PINPOINT_HEALTH_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for monitoring server from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_TimeoutError(t *testing.T) {
	t.Setenv("PINPOINT_GEOCODER_TIMEOUT", "error_value")

	assert.PanicsWithValue(t, "failed to parse geocoder timeout from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_ShutdownTimeoutError(t *testing.T) {
	t.Setenv("PINPOINT_SHUTDOWN_TIMEOUT", "error_value")

	assert.PanicsWithValue(t, "failed to parse shutdown timeout from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_Validation(t *testing.T) {
	t.Run("missing API key", func(t *testing.T) {
		t.Setenv("PINPOINT_PROVIDER_KEY", "")

		assert.Panics(t, func() { config.MustLoad() })
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Setenv("PINPOINT_PROVIDER_KEY", "testAPIKey")
		t.Setenv("PINPOINT_PROVIDER_TYPE", "nominatim")

		assert.Panics(t, func() { config.MustLoad() })
	})

	t.Run("same port for both servers", func(t *testing.T) {
		t.Setenv("PINPOINT_PROVIDER_KEY", "testAPIKey")
		t.Setenv("PINPOINT_PORT", "8081")

		assert.Panics(t, func() { config.MustLoad() })
	})

	t.Run("malformed geocoder URL", func(t *testing.T) {
		t.Setenv("PINPOINT_PROVIDER_KEY", "testAPIKey")
		t.Setenv("PINPOINT_GEOCODER_URL", "not a url")

		assert.Panics(t, func() { config.MustLoad() })
	})
}
