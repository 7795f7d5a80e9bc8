package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/pinpoint/internal/geocoding"
	"github.com/UnknownOlympus/pinpoint/internal/metrics"
	"github.com/UnknownOlympus/pinpoint/internal/models"
)

// SearchService turns a submitted address into a map view.
type SearchService struct {
	log          *slog.Logger       // Logger for logging service activities
	provider     geocoding.Provider // Geocoding provider for external geocoding services
	providerName string             // Name of the provider for metrics labeling
	metrics      *metrics.Metrics   // Metrics for tracking service performance
	container    string             // Id of the page element the map mounts into
}

// Outcome is the settled state of one submission: exactly one of View and Alert is set.
type Outcome struct {
	View  *models.MapView `json:"view,omitempty"`
	Alert *Alert          `json:"alert,omitempty"`
}

// NewSearchService creates a new instance of SearchService.
// An empty container means the page has nowhere to render a map,
// and every successful lookup will fail with ErrMapContainerMissing.
func NewSearchService(
	log *slog.Logger,
	provider geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
	container string,
) *SearchService {
	return &SearchService{
		log:          log,
		provider:     provider,
		providerName: providerName,
		metrics:      metrics,
		container:    container,
	}
}

// Search geocodes address and builds the map view for its first match.
// The address is forwarded untouched.
func (ss *SearchService) Search(ctx context.Context, address string) (*models.MapView, error) {
	coords, err := ss.geocode(ctx, address)
	if err != nil {
		ss.metrics.APIErrors.WithLabelValues(errorLabel(err)).Inc()
		return nil, err
	}

	if ss.container == "" {
		return nil, ErrMapContainerMissing
	}

	view := models.NewMapView(ss.container, *coords)

	return &view, nil
}

// Submit runs one search to completion and never returns an error:
// failures are logged and turned into an alert.
func (ss *SearchService) Submit(ctx context.Context, address string) Outcome {
	ss.log.DebugContext(ctx, "Search submitted", "address", address)

	view, err := ss.Search(ctx, address)
	if err != nil {
		alert := Classify(err)
		ss.log.ErrorContext(ctx, "Geocoding error", "address", address, "kind", alert.Kind, "error", err)
		ss.metrics.Searches.WithLabelValues("failure").Inc()

		return Outcome{Alert: &alert}
	}

	ss.log.InfoContext(ctx, "Search succeeded", "address", address,
		"lat", view.Center.Latitude, "lng", view.Center.Longitude)
	ss.metrics.Searches.WithLabelValues("success").Inc()

	return Outcome{View: view}
}

// geocode calls the provider and records its latency and in-flight count,
// even when the provider panics.
func (ss *SearchService) geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	ss.metrics.InFlight.Inc()
	defer ss.metrics.InFlight.Dec()

	startTime := time.Now()
	defer func() {
		ss.metrics.RequestSeconds.WithLabelValues(ss.providerName).Observe(time.Since(startTime).Seconds())
	}()

	return ss.provider.Geocode(ctx, address)
}

func errorLabel(err error) string {
	var statusErr *geocoding.StatusError
	if !errors.As(err, &statusErr) {
		return "transport"
	}

	// Keep label cardinality bounded.
	if !statusErr.Status.Known() {
		return "unrecognized"
	}

	return string(statusErr.Status)
}
