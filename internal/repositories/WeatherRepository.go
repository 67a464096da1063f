package repositories

import (
	"context"
	"errors"

	"weather-relay/config"
	"weather-relay/internal/models"
	"weather-relay/pkg/logger"
	"weather-relay/pkg/observe"
)

var (
	// ErrUpstream matches every failure to obtain a usable body from the provider.
	ErrUpstream = errors.New("upstream weather provider failure")
	// ErrEmptyResponse is the subset of ErrUpstream where the provider answered with no body.
	ErrEmptyResponse = errors.New("empty response from weather provider")
)

// WeatherRepository fetches raw timeline documents. Implementations must be safe for concurrent use.
type WeatherRepository interface {
	Name() string
	FetchTimeline(ctx context.Context, req models.TimelineRequest) (string, error)
}

func InitWeatherRepository(cfg *config.Config, l *logger.Logger, m *observe.Metrics) (WeatherRepository, error) {
	return NewVisualCrossingRepository(VisualCrossingOptions{
		BaseURL: cfg.Weather.BaseURL,
		APIKey:  cfg.Weather.APIKey,
		Timeout: cfg.UpstreamTimeout(),
	}, l, m)
}
