package config

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the pinpoint service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port the web page and lookup API listen on.
// - HealthPort: The port for the monitoring server (healthz, metrics).
// - ProviderType: The geocoding client to use (google, google-sdk).
// - APIKey: The key for the Geocoding API, kept on the server.
// - BrowserKey: The key the page uses to load the Maps JavaScript API.
// - GeocoderURL: Optional override of the Geocoding API endpoint.
// - GeocoderTimeout: Timeout for a single geocoding call, zero means none.
// - ShutdownTimeout: How long servers may drain on shutdown.
type Config struct {
	Env             string        `validate:"required"`
	Port            int           `validate:"min=1,max=65535"`
	HealthPort      int           `validate:"min=1,max=65535,nefield=Port"`
	ProviderType    string        `validate:"oneof=google google-sdk"`
	APIKey          string        `validate:"required"`
	BrowserKey      string        `validate:"required"`
	GeocoderURL     string        `validate:"omitempty,url"`
	GeocoderTimeout time.Duration `validate:"gte=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// MustLoad reads the configuration from the environment and an optional .env file.
// It panics when a value cannot be parsed or the result is invalid.
func MustLoad() *Config {
	_ = godotenv.Load()

	vpr := viper.New()
	vpr.SetEnvPrefix("PINPOINT")
	vpr.AutomaticEnv()
	vpr.SetDefault("env", "production")
	vpr.SetDefault("port", "8080")
	vpr.SetDefault("health_port", "8081")
	vpr.SetDefault("provider_type", "google")
	vpr.SetDefault("geocoder_timeout", "0s")
	vpr.SetDefault("shutdown_timeout", "10s")

	port, err := strconv.Atoi(vpr.GetString("port"))
	if err != nil {
		panic("failed to parse port for web server from configuration")
	}

	healthPort, err := strconv.Atoi(vpr.GetString("health_port"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	geocoderTimeout, err := time.ParseDuration(vpr.GetString("geocoder_timeout"))
	if err != nil {
		panic("failed to parse geocoder timeout from configuration")
	}

	shutdownTimeout, err := time.ParseDuration(vpr.GetString("shutdown_timeout"))
	if err != nil {
		panic("failed to parse shutdown timeout from configuration")
	}

	apiKey := vpr.GetString("provider_key")
	browserKey := vpr.GetString("browser_key")
	if browserKey == "" {
		browserKey = apiKey
	}

	cfg := &Config{
		Env:             vpr.GetString("env"),
		Port:            port,
		HealthPort:      healthPort,
		ProviderType:    vpr.GetString("provider_type"),
		APIKey:          apiKey,
		BrowserKey:      browserKey,
		GeocoderURL:     vpr.GetString("geocoder_url"),
		GeocoderTimeout: geocoderTimeout,
		ShutdownTimeout: shutdownTimeout,
	}

	if err = validator.New().Struct(cfg); err != nil {
		panic("invalid configuration: " + err.Error())
	}

	return cfg
}
