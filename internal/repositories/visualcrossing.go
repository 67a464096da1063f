package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"weather-relay/internal/models"
	"weather-relay/pkg/logger"
	"weather-relay/pkg/observe"
)

const (
	// Units are fixed: every payload we relay is metric.
	unitGroup = "metric"

	locationPath      = "/{location}"
	locationRangePath = "/{location}/{start}/{end}"

	userAgent = "weather-relay/1.0"
)

type VisualCrossingOptions struct {
	BaseURL string
	APIKey  string
	// Timeout of zero keeps the client default (no deadline).
	Timeout time.Duration
}

type VisualCrossingRepository struct {
	apiKey string
	client *resty.Client
	l      *logger.Logger
	m      *observe.Metrics
}

func NewVisualCrossingRepository(opts VisualCrossingOptions, l *logger.Logger, m *observe.Metrics) (*VisualCrossingRepository, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("API key cannot be empty")
	}
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, errors.New("base URL cannot be empty")
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetRetryCount(0).
		SetLogger(restyLogger{l: l})
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	return &VisualCrossingRepository{
		apiKey: opts.APIKey,
		client: client,
		l:      l,
		m:      m,
	}, nil
}

func (v *VisualCrossingRepository) Name() string {
	return "visual-crossing"
}

// FetchTimeline issues a single GET and returns the provider body untouched.
func (v *VisualCrossingRepository) FetchTimeline(ctx context.Context, tr models.TimelineRequest) (string, error) {
	start := time.Now()

	req := v.client.R().
		SetContext(ctx).
		SetPathParam("location", tr.Location).
		SetQueryParams(map[string]string{
			"unitGroup": unitGroup,
			"key":       v.apiKey,
			"include":   tr.Include,
		})

	path := locationPath
	if tr.HasRange() {
		path = locationRangePath
		req.SetPathParams(map[string]string{
			"start": tr.StartDate.Format(models.DateLayout),
			"end":   tr.EndDate.Format(models.DateLayout),
		})
	}

	v.l.Debug("making visualcrossing API request", map[string]any{
		"params": tr.RequestParams(),
	})

	resp, err := req.Get(path)
	if err != nil {
		v.m.ObserveUpstream(tr.Include, observe.OutcomeNetwork, time.Since(start))
		return "", fmt.Errorf("%w: failed to do request: %w", ErrUpstream, err)
	}

	v.l.Info("received visualcrossing API response", map[string]any{
		"params":     tr.RequestParams(),
		"status":     resp.StatusCode(),
		"statusText": resp.Status(),
		"elapsed":    resp.Time().String(),
	})

	if !resp.IsSuccess() {
		v.m.ObserveUpstream(tr.Include, observe.OutcomeStatus, time.Since(start))
		return "", errors.Wrapf(ErrUpstream, "HTTP error (status %d)", resp.StatusCode())
	}

	body := resp.Body()
	if len(body) == 0 {
		v.m.ObserveUpstream(tr.Include, observe.OutcomeEmpty, time.Since(start))
		return "", fmt.Errorf("%w: %w", ErrUpstream, ErrEmptyResponse)
	}

	v.m.ObserveUpstream(tr.Include, observe.OutcomeSuccess, time.Since(start))

	return string(body), nil
}

// restyLogger routes resty's own diagnostics into the service logger.
type restyLogger struct {
	l *logger.Logger
}

func (r restyLogger) Errorf(format string, v ...any) {
	r.l.Error(fmt.Errorf(format, v...), map[string]any{"component": "resty"})
}

func (r restyLogger) Warnf(format string, v ...any) {
	r.l.Warning(fmt.Sprintf(format, v...), map[string]any{"component": "resty"})
}

func (r restyLogger) Debugf(format string, v ...any) {
	r.l.Debug(fmt.Sprintf(format, v...), map[string]any{"component": "resty"})
}
