package repositories

import (
	"errors"
	"fmt"

	"upfound/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{
		db: db,
	}
}

// Create inserts a comment record.
func (r *GORMCommentRepository) Create(comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment by its ID.
func (r *GORMCommentRepository) GetByID(id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment with ID %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get comment by ID %s: %w", id, err)
	}
	return &comment, nil
}

// Delete removes a comment by its ID.
func (r *GORMCommentRepository) Delete(id string) error {
	res := r.db.Delete(&models.Comment{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: comment with ID %s", ErrNotFound, id)
	}
	return nil
}

// ListByProduct returns the product's comments newest-first with authors
// resolved.
func (r *GORMCommentRepository) ListByProduct(productID string, limit, offset int) ([]models.Comment, error) {
	tx := r.db.Where("product_id = ?", productID).Order("created_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if offset > 0 {
		tx = tx.Offset(offset)
	}

	var comments []models.Comment
	err := tx.Preload("Author").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for product %s: %w", productID, err)
	}
	return comments, nil
}

// CountByProduct returns the number of comment records referencing the
// product.
func (r *GORMCommentRepository) CountByProduct(productID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("product_id = ?", productID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count comments for product %s: %w", productID, err)
	}
	return count, nil
}
