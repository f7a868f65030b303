package repositories

import "upfound/internal/models"

// CommentRepository defines the interface for comment record access.
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id string) (*models.Comment, error)
	Delete(id string) error
	// ListByProduct returns comments newest-first with the author resolved.
	ListByProduct(productID string, limit, offset int) ([]models.Comment, error)
	CountByProduct(productID string) (int64, error)
}
