package repositories

import (
	"errors"
	"fmt"
	"strings"

	"upfound/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.Category == "" {
		product.Category = "Global"
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID retrieves a single product with its submitter resolved.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("SubmittedBy").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product with ID %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Update writes a product's content columns only. The upvotes and comments
// counters belong to the ledger transactions, and the submitter and creation
// time are immutable, so none of them are written here; a stale in-memory
// copy cannot revert a counter committed in between.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Model(product).
		Select("name", "tagline", "description", "website", "logo", "category", "medias").
		Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product with ID %s", ErrNotFound, product.ID)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product with ID %s", ErrNotFound, id)
	}
	return nil
}

// feedScope applies the query's category filter. Matching is exact but
// case-insensitive, so "Global" and "global" select the same rows.
func (r *GORMProductRepository) feedScope(query ProductQuery) *gorm.DB {
	tx := r.db.Model(&models.Product{})
	if query.Category != "" && !strings.EqualFold(query.Category, "all") {
		tx = tx.Where("LOWER(category) = LOWER(?)", query.Category)
	}
	return tx
}

// List returns one page of the feed with submitters preloaded.
func (r *GORMProductRepository) List(query ProductQuery) ([]models.Product, error) {
	tx := r.feedScope(query)
	switch query.Sort {
	case SortLatest:
		tx = tx.Order("created_at DESC")
	case SortTrending:
		tx = tx.Order("upvotes DESC")
	}

	if query.Limit > 0 {
		tx = tx.Limit(query.Limit)
	}
	if query.Offset > 0 {
		tx = tx.Offset(query.Offset)
	}

	var products []models.Product
	err := tx.Preload("SubmittedBy").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Count returns the total number of products matching the query's filter.
func (r *GORMProductRepository) Count(query ProductQuery) (int64, error) {
	var count int64
	if err := r.feedScope(query).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// ListBySubmitter returns products submitted by the given user, newest first.
func (r *GORMProductRepository) ListBySubmitter(userID string, limit, offset int) ([]models.Product, error) {
	tx := r.db.Where("submitted_by_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if offset > 0 {
		tx = tx.Offset(offset)
	}

	var products []models.Product
	err := tx.Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products for submitter %s: %w", userID, err)
	}
	return products, nil
}

// CountBySubmitter returns how many products the given user has submitted.
func (r *GORMProductRepository) CountBySubmitter(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).
		Where("submitted_by_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count products for submitter %s: %w", userID, err)
	}
	return count, nil
}

// AdjustUpvotes applies a relative update to the product's vote counter.
func (r *GORMProductRepository) AdjustUpvotes(id string, delta int) error {
	res := r.db.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("upvotes", gorm.Expr("upvotes + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("failed to adjust upvotes for product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product with ID %s", ErrNotFound, id)
	}
	return nil
}

// AdjustComments applies a relative update to the product's comment counter.
func (r *GORMProductRepository) AdjustComments(id string, delta int) error {
	res := r.db.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("comments", gorm.Expr("comments + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("failed to adjust comment count for product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product with ID %s", ErrNotFound, id)
	}
	return nil
}
