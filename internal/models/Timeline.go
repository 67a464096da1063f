package models

import "time"

// Include categories requested from the timeline endpoint.
const (
	IncludeCurrentAndForecast = "current,days,alerts"
	IncludeHistorical         = "hours,alerts"
	IncludeAlerts             = "alerts"
)

const DateLayout = "2006-01-02"

// TimelineRequest describes one call to the provider's timeline endpoint.
// StartDate and EndDate are either both zero or both set.
type TimelineRequest struct {
	Location  string
	StartDate time.Time
	EndDate   time.Time
	Include   string
}

func (r TimelineRequest) HasRange() bool {
	return !r.StartDate.IsZero() && !r.EndDate.IsZero()
}

func (r TimelineRequest) RequestParams() map[string]any {
	params := map[string]any{
		"location": r.Location,
		"include":  r.Include,
	}
	if r.HasRange() {
		params["start"] = r.StartDate.Format(DateLayout)
		params["end"] = r.EndDate.Format(DateLayout)
	}
	return params
}

// NoAlerts is the canned payload returned when the provider has nothing to say.
type NoAlerts struct {
	Alerts  []any  `json:"alerts"`
	Message string `json:"message" example:"No active weather alerts for this location."`
}
