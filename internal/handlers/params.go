package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// parseIntQuery reads an integer query parameter, falling back to def when
// absent. Non-numeric input is an error, never silently coerced.
func parseIntQuery(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
