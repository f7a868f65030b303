package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"upfound/internal/models"
	"upfound/internal/repositories"
)

func seedFeed(t *testing.T, store repositories.Store) (submitterID string, alpha, beta, gamma string) {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	user := seedUser(t, store, "Sam", "sam0000001", "sam@example.com")

	a := seedProduct(t, store, "Alpha", "DevTools", user.ID, base)
	b := seedProduct(t, store, "Beta", "Design", user.ID, base.Add(time.Hour))
	g := seedProduct(t, store, "Gamma", "DevTools", user.ID, base.Add(2*time.Hour))

	assert.NoError(t, store.Products().AdjustUpvotes(a.ID, 5))
	assert.NoError(t, store.Products().AdjustUpvotes(b.ID, 9))
	assert.NoError(t, store.Products().AdjustUpvotes(g.ID, 2))
	return user.ID, a.ID, b.ID, g.ID
}

func TestListProductsSortOrders(t *testing.T) {
	store := repositories.NewMockStore()
	service := NewFeedService(store)
	seedFeed(t, store)

	// "all" keeps the store's insertion order.
	page, err := service.ListProducts(0, 0, "all", "all")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalCount)
	assert.Equal(t, "Alpha", page.Products[0].Name)

	// "latest" sorts newest first.
	page, err = service.ListProducts(0, 0, "latest", "all")
	assert.NoError(t, err)
	names := productNames(page.Products)
	assert.Equal(t, []string{"Gamma", "Beta", "Alpha"}, names)

	// "trending" sorts most upvoted first.
	page, err = service.ListProducts(0, 0, "trending", "all")
	assert.NoError(t, err)
	names = productNames(page.Products)
	assert.Equal(t, []string{"Beta", "Alpha", "Gamma"}, names)
}

func TestListProductsCategoryFilter(t *testing.T) {
	store := repositories.NewMockStore()
	service := NewFeedService(store)
	seedFeed(t, store)

	// Category matching is exact but case-insensitive.
	page, err := service.ListProducts(0, 0, "latest", "devtools")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalCount)
	assert.Equal(t, []string{"Gamma", "Alpha"}, productNames(page.Products))

	// A prefix is not a match.
	page, err = service.ListProducts(0, 0, "latest", "Dev")
	assert.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.Equal(t, int64(0), page.TotalCount)
}

func TestListProductsPagination(t *testing.T) {
	store := repositories.NewMockStore()
	service := NewFeedService(store)
	seedFeed(t, store)

	page, err := service.ListProducts(2, 0, "latest", "all")
	assert.NoError(t, err)
	assert.Len(t, page.Products, 2)
	// TotalCount reflects the whole filter, not the page.
	assert.Equal(t, int64(3), page.TotalCount)

	page, err = service.ListProducts(2, 2, "latest", "all")
	assert.NoError(t, err)
	assert.Len(t, page.Products, 1)
	assert.Equal(t, "Alpha", page.Products[0].Name)

	// Offset past the end yields an empty page, not an error.
	page, err = service.ListProducts(2, 10, "latest", "all")
	assert.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.Equal(t, int64(3), page.TotalCount)
}

func TestListProductsInvalidArguments(t *testing.T) {
	service := NewFeedService(repositories.NewMockStore())

	_, err := service.ListProducts(0, 0, "popular", "all")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = service.ListProducts(-1, 0, "all", "all")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = service.ListProducts(0, -1, "all", "all")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGetProductDetail(t *testing.T) {
	store := repositories.NewMockStore()
	service := NewFeedService(store)

	user := seedUser(t, store, "Ada", "ada0000001", "ada@example.com")
	viewer := seedUser(t, store, "Vera", "vera000001", "vera@example.com")
	product := seedProduct(t, store, "Widget", "DevTools", user.ID, time.Now())

	comments := NewCommentService(store, nil)
	_, err := comments.AddComment(product.ID, "nice", viewer.UserID)
	assert.NoError(t, err)

	votes := NewVoteService(store, nil)
	_, err = votes.ToggleVote(viewer.ID, product.ID)
	assert.NoError(t, err)

	// Anonymous viewers never see IsUpvoted true.
	detail, err := service.GetProductDetail(product.ID, nil)
	assert.NoError(t, err)
	assert.Equal(t, "Widget", detail.Name)
	assert.NotNil(t, detail.SubmittedBy)
	assert.Len(t, detail.ProductComments, 1)
	assert.False(t, detail.IsUpvoted)

	// The voter sees their own vote.
	detail, err = service.GetProductDetail(product.ID, &Identity{ID: viewer.ID, UserID: viewer.UserID})
	assert.NoError(t, err)
	assert.True(t, detail.IsUpvoted)

	// A different authenticated viewer does not.
	detail, err = service.GetProductDetail(product.ID, &Identity{ID: user.ID, UserID: user.UserID})
	assert.NoError(t, err)
	assert.False(t, detail.IsUpvoted)
}

func TestGetProductDetailUnknownProduct(t *testing.T) {
	service := NewFeedService(repositories.NewMockStore())

	_, err := service.GetProductDetail("no-such-product", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func productNames(products []models.Product) []string {
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	return names
}
