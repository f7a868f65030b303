package services

import (
	"fmt"
	"time"

	"upfound/internal/models"
	"upfound/internal/repositories"
)

// ProductService handles submission lifecycle: create, update, delete.
// Counters on a product are never touched here; those belong to the vote
// and comment ledgers.
type ProductService struct {
	store repositories.Store
}

// NewProductService creates a new ProductService.
func NewProductService(store repositories.Store) *ProductService {
	return &ProductService{
		store: store,
	}
}

// CreateProduct validates the submission and stores it. The submitter must
// exist; name, tagline, description, website and category are required.
func (s *ProductService) CreateProduct(product *models.Product) (*models.Product, error) {
	if product.Name == "" || product.Tagline == "" || product.Description == "" ||
		product.Website == "" || product.Category == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrInvalidArgument)
	}
	if product.Logo == "" {
		return nil, fmt.Errorf("%w: logo image is required", ErrInvalidArgument)
	}
	if len(product.Medias) > 5 {
		return nil, fmt.Errorf("%w: at most 5 media URLs are allowed", ErrInvalidArgument)
	}

	if _, err := s.store.Users().GetByID(product.SubmittedByID); err != nil {
		return nil, mapStoreErr(err)
	}

	product.Upvotes = 0
	product.Comments = 0
	product.CreatedAt = time.Now()
	if err := s.store.Products().Create(product); err != nil {
		return nil, mapStoreErr(err)
	}
	return product, nil
}

// UpdateProduct applies content changes to an existing product. The
// submitter reference and the counters are immutable here.
func (s *ProductService) UpdateProduct(id string, updates *models.Product) (*models.Product, error) {
	product, err := s.store.Products().GetByID(id)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if updates.Name != "" {
		product.Name = updates.Name
	}
	if updates.Tagline != "" {
		product.Tagline = updates.Tagline
	}
	if updates.Description != "" {
		product.Description = updates.Description
	}
	if updates.Website != "" {
		product.Website = updates.Website
	}
	if updates.Logo != "" {
		product.Logo = updates.Logo
	}
	if updates.Category != "" {
		product.Category = updates.Category
	}
	if updates.Medias != nil {
		if len(updates.Medias) > 5 {
			return nil, fmt.Errorf("%w: at most 5 media URLs are allowed", ErrInvalidArgument)
		}
		product.Medias = updates.Medias
	}

	product.SubmittedBy = nil // avoid writing the association back
	if err := s.store.Products().Update(product); err != nil {
		return nil, mapStoreErr(err)
	}
	return product, nil
}

// DeleteProduct removes a product. Only the submitter may delete it.
func (s *ProductService) DeleteProduct(id, callerID string) error {
	product, err := s.store.Products().GetByID(id)
	if err != nil {
		return mapStoreErr(err)
	}
	if product.SubmittedByID != callerID {
		return fmt.Errorf("%w: only the submitter may delete a product", ErrUnauthorized)
	}
	if err := s.store.Products().Delete(id); err != nil {
		return mapStoreErr(err)
	}
	return nil
}
