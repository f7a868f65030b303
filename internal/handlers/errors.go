package handlers

import (
	"errors"
	"log"

	"upfound/internal/services"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error kind to its HTTP status. Unrecognized
// errors are internal: the caller gets a generic message, the detail goes to
// the log only.
func respondError(c *fiber.Ctx, err error, internalMsg string) error {
	var status int
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrUnauthorized):
		status = fiber.StatusForbidden
	default:
		log.Printf("%s: %v", internalMsg, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": internalMsg,
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"message": internalMsg,
		"error":   err.Error(),
	})
}
