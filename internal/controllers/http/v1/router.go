package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"

	_ "weather-relay/docs"
	"weather-relay/internal/services/weather"
	"weather-relay/pkg/logger"
	"weather-relay/pkg/observe"
)

const apiPrefix = "/api"

type routes struct {
	service *weather.WeatherService
	l       *logger.Logger
}

func NewRouter(
	app *fiber.App,
	weatherService *weather.WeatherService,
	l *logger.Logger,
	m *observe.Metrics,
) {
	r := &routes{
		service: weatherService,
		l:       l,
	}

	// Swagger documentation, served from the registered docs package
	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	// API routes; the static segments must be registered before :city
	api := app.Group(apiPrefix)
	api.Get("/weather/history", r.handleHistoricalWeather)
	api.Get("/weather/alerts", r.handleWeatherAlerts)
	api.Get("/weather/:city", r.handleCurrentWeather)
}
