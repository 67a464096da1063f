package http

import (
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"weather-relay/internal/models"
	"weather-relay/internal/services/weather"
)

const (
	msgCityRequired = "Missing required parameter: city"
	msgInvalidDate  = "Invalid date format, expected YYYY-MM-DD"
)

// handleCurrentWeather godoc
// @Summary Get current weather and forecast
// @Description Relays the provider's current conditions, daily forecast and alerts for a city or "lat,lon" pair.
// @Tags Weather
// @Produce json
// @Param city path string true "City name or coordinates" example(Rome)
// @Success 200 {object} object "Raw provider timeline document"
// @Failure 404 {object} models.ErrorEnvelope "Weather data not found"
// @Failure 500 {object} models.ErrorEnvelope "Internal server error"
// @Router /api/weather/{city} [get]
// @Example {curl} Example usage:
//
//	curl -X GET "http://localhost:8080/api/weather/Rome"
func (r *routes) handleCurrentWeather(c *fiber.Ctx) error {
	// Routing runs on the raw path so an encoded "/" stays inside the city segment.
	city := c.Params("city")
	if unescaped, err := url.PathUnescape(city); err == nil {
		city = unescaped
	}

	body, err := r.service.CurrentAndForecast(c.UserContext(), city)
	if err != nil {
		return r.failure(c, err)
	}

	return sendRaw(c, body)
}

// handleHistoricalWeather godoc
// @Summary Get historical weather
// @Description Relays the provider's hourly record for one day. Defaults to yesterday in server local time.
// @Tags Weather
// @Produce json
// @Param city query string true "City name or coordinates" example(Rome)
// @Param date query string false "Calendar date (YYYY-MM-DD)" example(2024-03-14)
// @Success 200 {object} object "Raw provider timeline document"
// @Failure 400 {object} models.ErrorEnvelope "Bad request - missing city or malformed date"
// @Failure 404 {object} models.ErrorEnvelope "Weather data not found"
// @Failure 500 {object} models.ErrorEnvelope "Internal server error"
// @Router /api/weather/history [get]
func (r *routes) handleHistoricalWeather(c *fiber.Ctx) error {
	city := c.Query("city")

	var date time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation(models.DateLayout, raw, time.Local)
		if err != nil {
			r.l.Warning("invalid date parameter", map[string]any{"provided": raw})
			return sendEnvelope(c, models.NewErrorEnvelope(msgInvalidDate, fiber.StatusBadRequest, models.CategoryBadRequest))
		}
		date = parsed
	}

	body, err := r.service.Historical(c.UserContext(), city, date)
	if err != nil {
		return r.failure(c, err)
	}

	return sendRaw(c, body)
}

// handleWeatherAlerts godoc
// @Summary Get weather alerts
// @Description Relays the provider's active alerts. Upstream failures are reported as an empty alert list with status 200.
// @Tags Weather
// @Produce json
// @Param city query string true "City name or coordinates" example(Rome)
// @Success 200 {object} models.NoAlerts "Raw provider document or an empty alert list"
// @Failure 400 {object} models.ErrorEnvelope "Bad request - missing city"
// @Failure 500 {object} models.ErrorEnvelope "Internal server error"
// @Router /api/weather/alerts [get]
func (r *routes) handleWeatherAlerts(c *fiber.Ctx) error {
	city := c.Query("city")

	body, err := r.service.Alerts(c.UserContext(), city)
	if err != nil {
		return r.failure(c, err)
	}

	return sendRaw(c, body)
}

// failure maps service errors; anything unknown goes to the server error handler.
func (r *routes) failure(c *fiber.Ctx, err error) error {
	if errors.Is(err, weather.ErrCityRequired) {
		return sendEnvelope(c, models.NewErrorEnvelope(msgCityRequired, fiber.StatusBadRequest, models.CategoryBadRequest))
	}

	var notFound *weather.NotFoundError
	if errors.As(err, &notFound) {
		return sendEnvelope(c, models.NewErrorEnvelope(notFound.Message, fiber.StatusNotFound, models.CategoryNotFound))
	}

	return err
}

func sendEnvelope(c *fiber.Ctx, envelope models.ErrorEnvelope) error {
	return c.Status(envelope.Status).JSON(envelope)
}

// sendRaw relays the provider payload without re-encoding it.
func sendRaw(c *fiber.Ctx, body string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(body)
}
