package handlers

import (
	"log"

	"upfound/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CommentHandler handles HTTP requests for product comments.
type CommentHandler struct {
	commentService *services.CommentService
	validate       *validator.Validate
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the comment routes with the Fiber app. Listing
// is public; adding and removing require authentication.
func (h *CommentHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	router.Post("/products/:id/comment", authRequired, h.HandleAddComment)
	router.Get("/products/:id/comments", h.HandleGetComments)
	router.Delete("/products/comments/:commentId", authRequired, h.HandleRemoveComment)
}

// AddCommentRequest represents the request body for adding a comment. The
// author is addressed by their public user id.
type AddCommentRequest struct {
	Content  string `json:"content" validate:"required,max=2000"`
	AuthorID string `json:"authorId" validate:"required"`
}

// HandleAddComment creates a comment on a product.
func (h *CommentHandler) HandleAddComment(c *fiber.Ctx) error {
	var req AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add comment request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	comment, err := h.commentService.AddComment(c.Params("id"), req.Content, req.AuthorID)
	if err != nil {
		return respondError(c, err, "Comment addition failed")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

// HandleGetComments returns one page of a product's comments.
func (h *CommentHandler) HandleGetComments(c *fiber.Ctx) error {
	limit, err := parseIntQuery(c, "limit", 10)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid limit or offset",
		})
	}
	offset, err := parseIntQuery(c, "offset", 0)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid limit or offset",
		})
	}

	page, err := h.commentService.ListComments(c.Params("id"), limit, offset)
	if err != nil {
		return respondError(c, err, "Failed to retrieve comments")
	}
	return c.JSON(page)
}

// HandleRemoveComment deletes a comment.
func (h *CommentHandler) HandleRemoveComment(c *fiber.Ctx) error {
	if err := h.commentService.RemoveComment(c.Params("commentId")); err != nil {
		return respondError(c, err, "Delete comment failed")
	}
	return c.JSON(fiber.Map{
		"message": "Comment deleted successfully",
	})
}
