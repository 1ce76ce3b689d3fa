package handlers

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/cv-analyzer/internal/services"
)

const MsgTooManyRequests = "Too many requests, please try again later."

// RateLimit rejects a request with 429 before any upload handling once the
// client's window is full.
func RateLimit(gate services.RequestGate, logger *zap.Logger) fiber.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		allowed, retryAfter := gate.Allow(c.IP())
		if allowed {
			return c.Next()
		}

		seconds := int(math.Ceil(retryAfter.Seconds()))
		if seconds < 1 {
			seconds = 1
		}

		logger.Warn("rate limit exceeded",
			zap.String("client", c.IP()),
			zap.Int("retry_after_seconds", seconds),
		)

		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(seconds))
		return c.Status(fiber.StatusTooManyRequests).SendString(MsgTooManyRequests)
	}
}
