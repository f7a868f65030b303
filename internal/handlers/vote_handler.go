package handlers

import (
	"fmt"

	"upfound/internal/middleware"
	"upfound/internal/services"

	"github.com/gofiber/fiber/v2"
)

// VoteHandler handles HTTP requests for vote toggling.
type VoteHandler struct {
	voteService *services.VoteService
}

// NewVoteHandler creates a new VoteHandler.
func NewVoteHandler(voteService *services.VoteService) *VoteHandler {
	return &VoteHandler{
		voteService: voteService,
	}
}

// RegisterRoutes registers the vote routes with the Fiber app.
func (h *VoteHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	router.Put("/products/:id/upvote", authRequired, h.HandleToggleVote)
}

// HandleToggleVote flips the authenticated user's vote on a product.
func (h *VoteHandler) HandleToggleVote(c *fiber.Ctx) error {
	identity := middleware.Identity(c)

	result, err := h.voteService.ToggleVote(identity.ID, c.Params("id"))
	if err != nil {
		return respondError(c, err, "Failed to record vote")
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Vote %s successfully", result),
		"result":  result,
	})
}
