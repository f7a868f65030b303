package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"upfound/internal/repositories"
)

func TestAddCommentIncrementsCounter(t *testing.T) {
	store := repositories.NewMockStore()
	events := &capturingPublisher{}
	service := NewCommentService(store, events)

	user := seedUser(t, store, "Ada", "ada0000001", "ada@example.com")
	product := seedProduct(t, store, "Widget", "DevTools", user.ID, time.Now())

	comment, err := service.AddComment(product.ID, "Great find!", user.UserID)
	assert.NoError(t, err)
	assert.NotEmpty(t, comment.ID)
	assert.Equal(t, user.ID, comment.AuthorID)
	assert.Equal(t, product.ID, comment.ProductID)

	updated, err := store.Products().GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, updated.Comments)

	assert.Equal(t, []string{"comment.added"}, events.routingKeys())
}

func TestAddCommentValidation(t *testing.T) {
	store := repositories.NewMockStore()
	service := NewCommentService(store, nil)

	user := seedUser(t, store, "Ada", "ada0000001", "ada@example.com")
	product := seedProduct(t, store, "Widget", "DevTools", user.ID, time.Now())

	testCases := []struct {
		name      string
		productID string
		content   string
		authorID  string
		wantErr   error
	}{
		{"missing product", "", "hello", user.UserID, ErrInvalidArgument},
		{"blank content", product.ID, "   ", user.UserID, ErrInvalidArgument},
		{"missing author", product.ID, "hello", "", ErrInvalidArgument},
		{"unknown product", "no-such-product", "hello", user.UserID, ErrNotFound},
		{"unknown author", product.ID, "hello", "nobody0000", ErrNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.AddComment(tc.productID, tc.content, tc.authorID)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	// No failed attempt may touch the counter.
	updated, err := store.Products().GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, updated.Comments)
}

func TestRemoveCommentDecrementsCounter(t *testing.T) {
	store := repositories.NewMockStore()
	events := &capturingPublisher{}
	service := NewCommentService(store, events)

	user := seedUser(t, store, "Ada", "ada0000001", "ada@example.com")
	product := seedProduct(t, store, "Widget", "DevTools", user.ID, time.Now())

	first, err := service.AddComment(product.ID, "first", user.UserID)
	assert.NoError(t, err)
	_, err = service.AddComment(product.ID, "second", user.UserID)
	assert.NoError(t, err)

	assert.NoError(t, service.RemoveComment(first.ID))

	updated, err := store.Products().GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, updated.Comments)

	total, err := store.Comments().CountByProduct(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)

	assert.Equal(t, []string{"comment.added", "comment.added", "comment.removed"}, events.routingKeys())
}

func TestRemoveCommentUnknown(t *testing.T) {
	service := NewCommentService(repositories.NewMockStore(), nil)

	err := service.RemoveComment("no-such-comment")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListCommentsNewestFirst(t *testing.T) {
	store := repositories.NewMockStore()
	service := NewCommentService(store, nil)

	user := seedUser(t, store, "Ada", "ada0000001", "ada@example.com")
	product := seedProduct(t, store, "Widget", "DevTools", user.ID, time.Now())

	for _, content := range []string{"oldest", "middle", "newest"} {
		_, err := service.AddComment(product.ID, content, user.UserID)
		assert.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	page, err := service.ListComments(product.ID, 2, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Comments, 2)
	assert.Equal(t, "newest", page.Comments[0].Content)
	assert.Equal(t, "middle", page.Comments[1].Content)
	assert.NotNil(t, page.Comments[0].Author)

	page, err = service.ListComments(product.ID, 2, 2)
	assert.NoError(t, err)
	assert.Len(t, page.Comments, 1)
	assert.Equal(t, "oldest", page.Comments[0].Content)
}

func TestListCommentsEmptyAndInvalid(t *testing.T) {
	service := NewCommentService(repositories.NewMockStore(), nil)

	page, err := service.ListComments("whatever", 10, 0)
	assert.NoError(t, err)
	assert.Empty(t, page.Comments)
	assert.Equal(t, int64(0), page.Total)

	_, err = service.ListComments("whatever", -1, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
