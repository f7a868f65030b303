package handlers

import (
	"log"

	"upfound/internal/middleware"
	"upfound/internal/models"
	"upfound/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product feed and the
// submission lifecycle.
type ProductHandler struct {
	feedService    *services.FeedService
	productService *services.ProductService
	validate       *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(feedService *services.FeedService, productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		feedService:    feedService,
		productService: productService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app. The feed
// routes are public; detail verifies a viewer token when present but never
// requires one; mutations require authentication.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authRequired, optionalAuth fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", optionalAuth, h.HandleGetProductByID)
	productRoutes.Post("/", authRequired, h.HandleCreateProduct)
	productRoutes.Put("/:id", authRequired, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", authRequired, h.HandleDeleteProduct)
}

// HandleGetProducts serves the paginated, sorted, filtered feed.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
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
	sort := c.Query("sort", "all")
	category := c.Query("category", "all")

	page, err := h.feedService.ListProducts(limit, offset, sort, category)
	if err != nil {
		return respondError(c, err, "Could not retrieve products")
	}
	return c.JSON(page)
}

// HandleGetProductByID serves the product detail with per-viewer vote
// annotation. Anonymous viewers are fine; they just get isUpvoted=false.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	detail, err := h.feedService.GetProductDetail(c.Params("id"), middleware.Identity(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve product")
	}
	return c.JSON(detail)
}

// CreateProductRequest represents the request body for a submission. Logo
// and media URLs come from the upload pipeline, which stores the binaries
// and hands back stable URLs.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=100"`
	Tagline     string   `json:"tagline" validate:"required,max=255"`
	Description string   `json:"description" validate:"required,max=2000"`
	Website     string   `json:"website" validate:"required,url"`
	Logo        string   `json:"logo" validate:"required,url"`
	Category    string   `json:"category"`
	Medias      []string `json:"medias" validate:"omitempty,max=5,dive,url"`
}

// HandleCreateProduct creates a product submitted by the authenticated user.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	identity := middleware.Identity(c)
	product := &models.Product{
		Name:          req.Name,
		Tagline:       req.Tagline,
		Description:   req.Description,
		Website:       req.Website,
		Logo:          req.Logo,
		Category:      req.Category,
		Medias:        req.Medias,
		SubmittedByID: identity.ID,
	}
	if product.Category == "" {
		product.Category = "Global"
	}

	created, err := h.productService.CreateProduct(product)
	if err != nil {
		return respondError(c, err, "Product creation failed")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateProduct applies content updates to an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var updates models.Product
	if err := c.BodyParser(&updates); err != nil {
		log.Printf("Error parsing update product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.productService.UpdateProduct(c.Params("id"), &updates)
	if err != nil {
		return respondError(c, err, "Update failed")
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product if the caller submitted it.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	identity := middleware.Identity(c)
	if err := h.productService.DeleteProduct(c.Params("id"), identity.ID); err != nil {
		return respondError(c, err, "Delete failed")
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted",
	})
}
