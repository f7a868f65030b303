package services

import (
	"errors"
	"fmt"

	"upfound/internal/models"
	"upfound/internal/repositories"
)

// Identity is an authenticated viewer, carried as an optional value:
// a nil *Identity is an anonymous viewer, never an error.
type Identity struct {
	ID     string // primary key
	UserID string // public id
}

// FeedPage is one page of the product feed plus the total count matching
// the filter across all pages.
type FeedPage struct {
	Products   []models.Product `json:"products"`
	TotalCount int64            `json:"totalCount"`
}

// ProductDetail is a single product with its comments and, for an
// authenticated viewer, whether that viewer has voted for it.
type ProductDetail struct {
	models.Product
	ProductComments []models.Comment `json:"productComments"`
	IsUpvoted       bool             `json:"isUpvoted"`
}

// FeedService is the feed query engine: paginated, sorted, filtered product
// listings with per-viewer vote annotation. All operations are pure reads.
type FeedService struct {
	store repositories.Store
}

// NewFeedService creates a new FeedService.
func NewFeedService(store repositories.Store) *FeedService {
	return &FeedService{
		store: store,
	}
}

// ListProducts returns one feed page. Sort must be one of "all" (default
// store ordering), "latest" (newest first) or "trending" (most upvoted
// first); category "all" matches everything, anything else is matched
// case-insensitively. TotalCount covers the whole filter, not the page.
func (s *FeedService) ListProducts(limit, offset int, sort, category string) (*FeedPage, error) {
	if limit < 0 || offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must be non-negative", ErrInvalidArgument)
	}

	feedSort := repositories.FeedSort(sort)
	switch feedSort {
	case repositories.SortAll, repositories.SortLatest, repositories.SortTrending:
	default:
		return nil, fmt.Errorf("%w: invalid sort option %q", ErrInvalidArgument, sort)
	}

	query := repositories.ProductQuery{
		Category: category,
		Sort:     feedSort,
		Limit:    limit,
		Offset:   offset,
	}
	products, err := s.store.Products().List(query)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	totalCount, err := s.store.Products().Count(query)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if products == nil {
		products = []models.Product{}
	}
	return &FeedPage{Products: products, TotalCount: totalCount}, nil
}

// GetProductDetail returns the product with its submitter and comments
// resolved. viewer is optional: authenticated viewers get their actual vote
// state, anonymous viewers always get IsUpvoted false.
func (s *FeedService) GetProductDetail(productID string, viewer *Identity) (*ProductDetail, error) {
	product, err := s.store.Products().GetByID(productID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	comments, err := s.store.Comments().ListByProduct(product.ID, 0, 0)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, mapStoreErr(err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	isUpvoted := false
	if viewer != nil {
		isUpvoted, err = s.store.Votes().Exists(viewer.ID, product.ID)
		if err != nil {
			return nil, mapStoreErr(err)
		}
	}

	return &ProductDetail{
		Product:         *product,
		ProductComments: comments,
		IsUpvoted:       isUpvoted,
	}, nil
}
