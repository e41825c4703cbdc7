// middleware/request_log.go
package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"squares-pool/utils/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestIDContextKey is the fiber Locals key holding the request id.
const RequestIDContextKey = "requestID"

// RequestLogger tags every request with an id (reusing a caller-supplied
// X-Request-ID) and writes one access log line when it finishes.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(RequestIDContextKey, requestID)
		c.Set(RequestIDHeader, requestID)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		fields := []interface{}{
			"request_id", requestID,
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start).String(),
			"ip", c.IP(),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Errorw("request", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Warnw("request", fields...)
		default:
			logger.Infow("request", fields...)
		}
		return err
	}
}
