package middleware

import (
	"log"
	"strings"

	"upfound/internal/services"

	"github.com/gofiber/fiber/v2"
)

// IdentityKey is the fiber locals key the middleware stores the verified
// viewer identity under.
const IdentityKey = "identity"

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		identity, err := authService.IdentityFromToken(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(IdentityKey, identity)
		return c.Next()
	}
}

// OptionalAuth verifies a token when one is supplied but never rejects the
// request: a missing, malformed, or expired token just leaves the viewer
// anonymous. Used on read paths that annotate per-viewer state.
func OptionalAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString, ok := bearerToken(c); ok {
			if identity, err := authService.IdentityFromToken(tokenString); err == nil {
				c.Locals(IdentityKey, identity)
			}
		}
		return c.Next()
	}
}

// Identity returns the verified viewer identity, or nil for an anonymous
// request.
func Identity(c *fiber.Ctx) *services.Identity {
	identity, _ := c.Locals(IdentityKey).(*services.Identity)
	return identity
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
