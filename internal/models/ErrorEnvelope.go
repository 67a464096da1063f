package models

import "time"

const (
	CategoryNotFound   = "Weather data not found"
	CategoryInternal   = "Internal Server Error"
	CategoryBadRequest = "Bad Request"

	DefaultInternalMessage = "Unexpected error occurred"
)

// ErrorEnvelope is the body of every failed response.
type ErrorEnvelope struct {
	Error     string    `json:"error" example:"Weather data not found"`
	Message   string    `json:"message" example:"Unable to fetch weather for this location. Check city name or coordinates."`
	Timestamp time.Time `json:"timestamp" example:"2024-03-15T10:04:05.123456789Z"`
	Status    int       `json:"status" example:"404"`
}

// NewErrorEnvelope stamps the envelope with the current UTC instant.
func NewErrorEnvelope(message string, status int, category string) ErrorEnvelope {
	return ErrorEnvelope{
		Error:     category,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Status:    status,
	}
}

// InternalErrorEnvelope is used for failures nothing else classified.
func InternalErrorEnvelope(status int, message string) ErrorEnvelope {
	if message == "" {
		message = DefaultInternalMessage
	}
	return NewErrorEnvelope(message, status, CategoryInternal)
}
