package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-relay/internal/models"
	"weather-relay/internal/repositories"
	"weather-relay/internal/services/weather"
	"weather-relay/pkg/httpserver"
	"weather-relay/pkg/logger"
	"weather-relay/pkg/observe"
)

// stubRepository implements WeatherRepository for testing
type stubRepository struct {
	mu       sync.Mutex
	body     string
	err      error
	panicMsg string
	requests []models.TimelineRequest
}

func (s *stubRepository) Name() string {
	return "stub"
}

func (s *stubRepository) FetchTimeline(ctx context.Context, req models.TimelineRequest) (string, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	if s.err != nil {
		return "", s.err
	}
	return s.body, nil
}

var errUnreachable = fmt.Errorf("%w: failed to do request: dial tcp: connection refused", repositories.ErrUpstream)

func newTestApp(repo repositories.WeatherRepository, opts ...weather.Option) *fiber.App {
	l := logger.NewZapLogger("test-app", io.Discard)
	m := observe.NewMetrics()

	app := httpserver.InitFiberServer(httpserver.Options{AppName: "test-app"}, l, m)
	NewRouter(app, weather.NewWeatherService(repo, l, opts...), l, m)
	return app
}

func doGet(t *testing.T, app *fiber.App, target string) (*http.Response, string) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func requireEnvelope(t *testing.T, resp *http.Response, body string, status int, category, message string) {
	t.Helper()

	assert.Equal(t, status, resp.StatusCode)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	assert.Equal(t, category, envelope["error"])
	assert.Equal(t, message, envelope["message"])
	assert.Equal(t, float64(status), envelope["status"])

	ts, ok := envelope["timestamp"].(string)
	require.True(t, ok, "timestamp must be a string")
	_, err := time.Parse(time.RFC3339Nano, ts)
	assert.NoError(t, err)
}

func TestHandleCurrentWeather_Success(t *testing.T) {
	const payload = `{"resolvedAddress":"Rome","currentConditions":{"temp":12.5},"days":[],"alerts":[]}`
	repo := &stubRepository{body: payload}
	app := newTestApp(repo)

	resp, body := doGet(t, app, "/api/weather/Rome")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, payload, body)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "application/json")
	assert.Equal(t, models.TimelineRequest{Location: "Rome", Include: "current,days,alerts"}, repo.requests[0])
}

func TestHandleCurrentWeather_EscapedCity(t *testing.T) {
	repo := &stubRepository{body: `{}`}
	app := newTestApp(repo)

	resp, _ := doGet(t, app, "/api/weather/New%20York")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, repo.requests, 1)
	assert.Equal(t, "New York", repo.requests[0].Location)
}

func TestHandleCurrentWeather_EncodedSlashInCity(t *testing.T) {
	repo := &stubRepository{err: errUnreachable}
	app := newTestApp(repo)

	resp, body := doGet(t, app, "/api/weather/a%2Fb")

	requireEnvelope(t, resp, body, http.StatusNotFound, "Weather data not found",
		"Unable to fetch weather for this location. Check city name or coordinates.")
	require.Len(t, repo.requests, 1)
	assert.Equal(t, "a/b", repo.requests[0].Location)
}

func TestHandleCurrentWeather_UpstreamFailure(t *testing.T) {
	app := newTestApp(&stubRepository{err: errUnreachable})

	resp, body := doGet(t, app, "/api/weather/Atlantis")

	requireEnvelope(t, resp, body, http.StatusNotFound, "Weather data not found",
		"Unable to fetch weather for this location. Check city name or coordinates.")
}

func TestHandleHistoricalWeather_DefaultDate(t *testing.T) {
	repo := &stubRepository{body: `{"days":[{"hours":[]}]}`}
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.Local)
	app := newTestApp(repo, weather.WithClock(func() time.Time { return now }))

	resp, body := doGet(t, app, "/api/weather/history?city=Rome")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"days":[{"hours":[]}]}`, body)
	require.Len(t, repo.requests, 1)
	assert.Equal(t, "Rome", repo.requests[0].Location)
	assert.Equal(t, "2024-03-14", repo.requests[0].StartDate.Format(models.DateLayout))
	assert.Equal(t, "2024-03-14", repo.requests[0].EndDate.Format(models.DateLayout))
	assert.Equal(t, "hours,alerts", repo.requests[0].Include)
}

func TestHandleHistoricalWeather_ExplicitDate(t *testing.T) {
	repo := &stubRepository{body: `{"days":[]}`}
	app := newTestApp(repo)

	resp, _ := doGet(t, app, "/api/weather/history?city=Oslo&date=2023-12-24")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, repo.requests, 1)
	assert.Equal(t, "2023-12-24", repo.requests[0].StartDate.Format(models.DateLayout))
	assert.Equal(t, "2023-12-24", repo.requests[0].EndDate.Format(models.DateLayout))
}

func TestHandleHistoricalWeather_InvalidDate(t *testing.T) {
	for _, date := range []string{"yesterday", "2024-13-01", "15-03-2024", "2024-03-15T00:00:00Z"} {
		repo := &stubRepository{body: `{}`}
		app := newTestApp(repo)

		resp, body := doGet(t, app, "/api/weather/history?city=Rome&date="+date)

		requireEnvelope(t, resp, body, http.StatusBadRequest, "Bad Request", "Invalid date format, expected YYYY-MM-DD")
		assert.Empty(t, repo.requests, "malformed date must not reach the provider")
	}
}

func TestHandleHistoricalWeather_MissingCity(t *testing.T) {
	repo := &stubRepository{body: `{}`}
	app := newTestApp(repo)

	resp, body := doGet(t, app, "/api/weather/history")

	requireEnvelope(t, resp, body, http.StatusBadRequest, "Bad Request", "Missing required parameter: city")
	assert.Empty(t, repo.requests)
}

func TestHandleHistoricalWeather_UpstreamFailure(t *testing.T) {
	app := newTestApp(&stubRepository{err: errUnreachable})

	resp, body := doGet(t, app, "/api/weather/history?city=Rome&date=2024-03-14")

	requireEnvelope(t, resp, body, http.StatusNotFound, "Weather data not found",
		"Unable to fetch historical weather. Check city or date.")
}

func TestHandleWeatherAlerts(t *testing.T) {
	tests := []struct {
		name     string
		repo     *stubRepository
		expected string
	}{
		{
			name:     "alerts relayed verbatim",
			repo:     &stubRepository{body: `{"alerts":[{"id":1}]}`},
			expected: `{"alerts":[{"id":1}]}`,
		},
		{
			name:     "body without alerts",
			repo:     &stubRepository{body: `{"other":1}`},
			expected: `{"alerts":[],"message":"No active weather alerts for this location."}`,
		},
		{
			name:     "upstream failure fails open",
			repo:     &stubRepository{err: errUnreachable},
			expected: `{"alerts":[],"message":"Unable to fetch alert data. Please check city or API key."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(tt.repo)

			resp, body := doGet(t, app, "/api/weather/alerts?city=Rome")

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.expected, body)
			assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "application/json")
			require.Len(t, tt.repo.requests, 1)
			assert.Equal(t, "alerts", tt.repo.requests[0].Include)
		})
	}
}

func TestHandleWeatherAlerts_FailClosed(t *testing.T) {
	app := newTestApp(&stubRepository{err: errUnreachable}, weather.WithAlertsFailClosed(true))

	resp, body := doGet(t, app, "/api/weather/alerts?city=Rome")

	requireEnvelope(t, resp, body, http.StatusNotFound, "Weather data not found",
		"Unable to fetch alert data. Please check city or API key.")
}

func TestHandleWeatherAlerts_MissingCity(t *testing.T) {
	app := newTestApp(&stubRepository{body: `{"alerts":[]}`})

	resp, body := doGet(t, app, "/api/weather/alerts?city=")

	requireEnvelope(t, resp, body, http.StatusBadRequest, "Bad Request", "Missing required parameter: city")
}

func TestUncaughtFailureIsInternalServerError(t *testing.T) {
	app := newTestApp(&stubRepository{panicMsg: "provider client not initialised"})

	resp, body := doGet(t, app, "/api/weather/Rome")

	requireEnvelope(t, resp, body, http.StatusInternalServerError, "Internal Server Error", "provider client not initialised")
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(&stubRepository{body: `{"alerts":[]}`})

	doGet(t, app, "/api/weather/alerts?city=Rome")
	resp, body := doGet(t, app, "/metrics")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `relay_http_requests_total{method="GET",route="/api/weather/alerts",status_code="200"} 1`)
}

func TestSwaggerDocument(t *testing.T) {
	app := newTestApp(&stubRepository{})

	resp, body := doGet(t, app, "/swagger/doc.json")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "/api/weather/history")
	assert.Contains(t, body, "models.ErrorEnvelope")
}
