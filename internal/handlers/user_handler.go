package handlers

import (
	"upfound/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for public user profiles and per-user
// listings.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterRoutes registers the user routes with the Fiber app. The listing
// routes take the user's public id as a query parameter, the profile route
// as a path parameter, matching the public API shape.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/submissions", h.HandleGetSubmissions)
	userRoutes.Get("/votes", h.HandleGetVotedProducts)
	userRoutes.Get("/:id", h.HandleGetProfile)
}

// HandleGetProfile returns a user's public profile with totals recomputed
// from the record sets.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	profile, err := h.userService.GetProfile(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve user")
	}
	return c.JSON(profile)
}

// HandleGetSubmissions returns one page of products submitted by a user.
func (h *UserHandler) HandleGetSubmissions(c *fiber.Ctx) error {
	page, limit, ok := pageParams(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid page or limit",
		})
	}

	submissions, err := h.userService.Submissions(c.Query("userId"), page, limit)
	if err != nil {
		return respondError(c, err, "Failed to fetch submissions")
	}
	return c.JSON(submissions)
}

// HandleGetVotedProducts returns one page of products a user has voted for.
func (h *UserHandler) HandleGetVotedProducts(c *fiber.Ctx) error {
	page, limit, ok := pageParams(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid page or limit",
		})
	}

	voted, err := h.userService.VotedProducts(c.Query("userId"), page, limit)
	if err != nil {
		return respondError(c, err, "Failed to fetch voted products")
	}
	return c.JSON(voted)
}

// pageParams parses the 1-based page/limit query pair.
func pageParams(c *fiber.Ctx) (page, limit int, ok bool) {
	page, err := parseIntQuery(c, "page", 1)
	if err != nil {
		return 0, 0, false
	}
	limit, err = parseIntQuery(c, "limit", 10)
	if err != nil {
		return 0, 0, false
	}
	return page, limit, true
}
