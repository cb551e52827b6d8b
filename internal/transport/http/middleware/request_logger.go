// Package middleware contains HTTP middlewares for delivery.
package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestLogger logs every request with method, path, status, duration
// and the acting user when Actor has resolved one. Server failures are
// logged at error level.
func RequestLogger(log *zap.SugaredLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		dur := time.Since(start)

		reqID, _ := c.Locals("requestid").(string)
		if reqID == "" {
			reqID = c.Get(fiber.HeaderXRequestID)
		}

		fields := []interface{}{
			"method", c.Method(),
			"path", c.OriginalURL(),
			"status", c.Response().StatusCode(),
			"duration_ms", float64(dur.Microseconds()) / 1000.0,
			"request_id", reqID,
		}
		if actorID, ok := c.Locals(ActorIDKey).(uuid.UUID); ok {
			fields = append(fields, "actor_id", actorID.String())
		}

		if c.Response().StatusCode() >= fiber.StatusInternalServerError {
			log.Errorw("http request", fields...)
		} else {
			log.Infow("http request", fields...)
		}
		return err
	}
}
