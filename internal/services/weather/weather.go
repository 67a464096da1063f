package weather

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"weather-relay/internal/models"
	"weather-relay/internal/repositories"
	"weather-relay/pkg/logger"
)

const (
	MsgCurrentNotFound    = "Unable to fetch weather for this location. Check city name or coordinates."
	MsgHistoricalNotFound = "Unable to fetch historical weather. Check city or date."
	MsgNoActiveAlerts     = "No active weather alerts for this location."
	MsgAlertsUnavailable  = "Unable to fetch alert data. Please check city or API key."

	// alertsMarker is the token a provider body must contain to be relayed as-is.
	alertsMarker = "alerts"
)

// ErrCityRequired is returned before any upstream call when the location is blank.
var ErrCityRequired = errors.New("city is required")

// NotFoundError is the single domain failure surfaced to callers.
type NotFoundError struct {
	Message string
	Err     error
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

type Option func(*WeatherService)

// WithClock replaces time.Now, mostly for tests of the historical default.
func WithClock(now func() time.Time) Option {
	return func(s *WeatherService) {
		s.now = now
	}
}

// WithAlertsFailClosed makes Alerts report upstream failures like the other operations.
func WithAlertsFailClosed(enabled bool) Option {
	return func(s *WeatherService) {
		s.alertsFailClosed = enabled
	}
}

// WeatherService relays requests to a single repository. It holds no mutable state.
type WeatherService struct {
	repo             repositories.WeatherRepository
	l                *logger.Logger
	now              func() time.Time
	alertsFailClosed bool
}

func NewWeatherService(repo repositories.WeatherRepository, l *logger.Logger, opts ...Option) *WeatherService {
	s := &WeatherService{
		repo: repo,
		l:    l,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CurrentAndForecast returns current conditions, daily forecast and alerts for city.
func (s *WeatherService) CurrentAndForecast(ctx context.Context, city string) (string, error) {
	if strings.TrimSpace(city) == "" {
		return "", ErrCityRequired
	}

	body, err := s.repo.FetchTimeline(ctx, models.TimelineRequest{
		Location: city,
		Include:  models.IncludeCurrentAndForecast,
	})
	if err != nil {
		s.l.Warning("failed to fetch current weather", map[string]any{"city": city, "repo": s.repo.Name(), "err": err.Error()})
		return "", &NotFoundError{Message: MsgCurrentNotFound, Err: err}
	}

	return body, nil
}

// Historical returns the hourly record of a single day. A zero date means yesterday.
func (s *WeatherService) Historical(ctx context.Context, city string, date time.Time) (string, error) {
	if strings.TrimSpace(city) == "" {
		return "", ErrCityRequired
	}

	if date.IsZero() {
		date = s.Yesterday()
	}

	body, err := s.repo.FetchTimeline(ctx, models.TimelineRequest{
		Location:  city,
		StartDate: date,
		EndDate:   date,
		Include:   models.IncludeHistorical,
	})
	if err != nil {
		s.l.Warning("failed to fetch historical weather", map[string]any{
			"city": city,
			"date": date.Format(models.DateLayout),
			"repo": s.repo.Name(),
			"err":  err.Error(),
		})
		return "", &NotFoundError{Message: MsgHistoricalNotFound, Err: err}
	}

	return body, nil
}

// Alerts fails open: upstream problems become a canned empty-alerts payload.
func (s *WeatherService) Alerts(ctx context.Context, city string) (string, error) {
	if strings.TrimSpace(city) == "" {
		return "", ErrCityRequired
	}

	body, err := s.repo.FetchTimeline(ctx, models.TimelineRequest{
		Location: city,
		Include:  models.IncludeAlerts,
	})

	switch {
	case errors.Is(err, repositories.ErrEmptyResponse):
		return noAlerts(MsgNoActiveAlerts)
	case err != nil:
		s.l.Warning("failed to fetch weather alerts", map[string]any{"city": city, "repo": s.repo.Name(), "err": err.Error()})
		if s.alertsFailClosed {
			return "", &NotFoundError{Message: MsgAlertsUnavailable, Err: err}
		}
		return noAlerts(MsgAlertsUnavailable)
	case !strings.Contains(body, alertsMarker):
		return noAlerts(MsgNoActiveAlerts)
	}

	return body, nil
}

// Yesterday is the calendar day before today in server local time.
func (s *WeatherService) Yesterday() time.Time {
	y, m, d := s.now().In(time.Local).Date()
	return time.Date(y, m, d-1, 0, 0, 0, 0, time.Local)
}

func noAlerts(message string) (string, error) {
	raw, err := json.Marshal(models.NoAlerts{Alerts: []any{}, Message: message})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
