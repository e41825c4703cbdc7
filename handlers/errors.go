package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"squares-pool/services"
	"squares-pool/utils/logger"
)

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// writeError maps engine errors to their HTTP status and renders them as
// {"code": kind, "error": message}. Anything unstructured is a storage
// failure and is logged, not echoed.
func writeError(c *fiber.Ctx, err error) error {
	var e *services.Error
	if errors.As(err, &e) {
		return c.Status(e.HTTP).JSON(e)
	}
	logger.Errorw("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"code": services.KindInternal, "error": "Internal server error"})
}
