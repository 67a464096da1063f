package httpserver

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"

	"weather-relay/internal/models"
	"weather-relay/pkg/logger"
	"weather-relay/pkg/observe"
)

type Options struct {
	AppName      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func InitFiberServer(opts Options, l *logger.Logger, m *observe.Metrics) *fiber.App {
	s := fiber.New(fiber.Config{
		AppName:      opts.AppName,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  opts.IdleTimeout,
		ErrorHandler: ErrorHandler(l),
	})

	s.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	s.Use(Observe(l, m))
	s.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	s.Use(cors.New())
	s.Use(healthcheck.New(healthcheck.Config{
		LivenessEndpoint:  "/manage/health",
		ReadinessEndpoint: "/manage/ready",
	}))

	return s
}

// ErrorHandler renders every error that escapes a handler as an error envelope.
// Framework errors keep their status, everything else is a 500.
func ErrorHandler(l *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var envelope models.ErrorEnvelope

		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code != fiber.StatusInternalServerError {
			envelope = models.NewErrorEnvelope(fe.Message, fe.Code, utils.StatusMessage(fe.Code))
		} else {
			l.Error(err, map[string]any{
				"method":     c.Method(),
				"path":       c.Path(),
				"request_id": c.Locals("requestid"),
			})
			envelope = models.InternalErrorEnvelope(fiber.StatusInternalServerError, err.Error())
		}

		return c.Status(envelope.Status).JSON(envelope)
	}
}

// Observe logs and measures every request once the rest of the chain has run.
func Observe(l *logger.Logger, m *observe.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		m.ObserveRequest(c.Method(), route, status, elapsed)

		l.Info("request served", map[string]any{
			"method":     c.Method(),
			"route":      route,
			"path":       c.Path(),
			"status":     status,
			"elapsed":    elapsed.String(),
			"request_id": c.Locals("requestid"),
		})

		return nil
	}
}
