package repositories

import "upfound/internal/models"

// FeedSort names the supported feed orderings.
type FeedSort string

const (
	SortAll      FeedSort = "all"      // default store ordering
	SortLatest   FeedSort = "latest"   // newest first
	SortTrending FeedSort = "trending" // most upvoted first
)

// ProductQuery describes a feed page request. Category "all" (or empty)
// matches every product; any other value is an exact, case-insensitive match.
type ProductQuery struct {
	Category string
	Sort     FeedSort
	Limit    int
	Offset   int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id string) (*models.Product, error)
	Update(product *models.Product) error
	Delete(id string) error
	// List returns one feed page with the submitter resolved.
	List(query ProductQuery) ([]models.Product, error)
	// Count returns the number of products matching the query's filter,
	// independent of its pagination window.
	Count(query ProductQuery) (int64, error)
	ListBySubmitter(userID string, limit, offset int) ([]models.Product, error)
	CountBySubmitter(userID string) (int64, error)
	// AdjustUpvotes and AdjustComments apply relative changes to the
	// denormalized counters. Only the ledgers may call them.
	AdjustUpvotes(id string, delta int) error
	AdjustComments(id string, delta int) error
}
