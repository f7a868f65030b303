package repositories

import (
	"errors"
	"fmt"

	"upfound/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMVoteRepository is a GORM implementation of VoteRepository.
type GORMVoteRepository struct {
	db *gorm.DB
}

// NewGORMVoteRepository creates a new instance of GORMVoteRepository.
func NewGORMVoteRepository(db *gorm.DB) *GORMVoteRepository {
	return &GORMVoteRepository{
		db: db,
	}
}

// Create inserts a vote record. The unique index on (user_id, product_id)
// rejects a concurrent duplicate that slipped past the ledger's exists-check.
func (r *GORMVoteRepository) Create(vote *models.Vote) error {
	if vote.ID == "" {
		vote.ID = uuid.New().String()
	}
	if err := r.db.Create(vote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: vote by user %s on product %s", ErrDuplicateKey, vote.UserID, vote.ProductID)
		}
		return fmt.Errorf("failed to create vote: %w", err)
	}
	return nil
}

// GetByUserAndProduct retrieves the vote for a (user, product) pair.
func (r *GORMVoteRepository) GetByUserAndProduct(userID, productID string) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.First(&vote, "user_id = ? AND product_id = ?", userID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: vote by user %s on product %s", ErrNotFound, userID, productID)
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return &vote, nil
}

// DeleteByUserAndProduct removes the vote for a (user, product) pair.
func (r *GORMVoteRepository) DeleteByUserAndProduct(userID, productID string) error {
	res := r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.Vote{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete vote: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: vote by user %s on product %s", ErrNotFound, userID, productID)
	}
	return nil
}

// Exists reports whether the user has an active vote on the product.
func (r *GORMVoteRepository) Exists(userID, productID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Vote{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check vote existence: %w", err)
	}
	return count > 0, nil
}

// CountByProduct returns the number of vote records referencing the product.
func (r *GORMVoteRepository) CountByProduct(productID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Vote{}).Where("product_id = ?", productID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count votes for product %s: %w", productID, err)
	}
	return count, nil
}

// CountByUser returns the number of vote records cast by the user.
func (r *GORMVoteRepository) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Vote{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count votes for user %s: %w", userID, err)
	}
	return count, nil
}

// ListByUser returns the user's votes newest-first with products resolved.
func (r *GORMVoteRepository) ListByUser(userID string, limit, offset int) ([]models.Vote, error) {
	tx := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if offset > 0 {
		tx = tx.Offset(offset)
	}

	var votes []models.Vote
	err := tx.Preload("Product").Find(&votes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list votes for user %s: %w", userID, err)
	}
	return votes, nil
}
