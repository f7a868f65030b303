package services

import (
	"fmt"
	"strings"
	"time"

	"upfound/internal/models"
	"upfound/internal/repositories"
)

// CommentPage is one page of a product's comments plus the total across all
// pages.
type CommentPage struct {
	Comments []models.Comment `json:"comments"`
	Total    int64            `json:"total"`
}

// CommentService is the comment ledger: the only mutation entry point for
// comment records and for the product's denormalized comment counter.
type CommentService struct {
	store    repositories.Store
	eventsMQ ActivityPublisher
}

// NewCommentService creates a new CommentService. eventsMQ may be nil.
func NewCommentService(store repositories.Store, eventsMQ ActivityPublisher) *CommentService {
	return &CommentService{
		store:    store,
		eventsMQ: eventsMQ,
	}
}

// AddComment creates a comment by the user identified by their public id and
// increments the product's comment counter in the same store transaction.
func (s *CommentService) AddComment(productID, content, authorUserID string) (*models.Comment, error) {
	if productID == "" || strings.TrimSpace(content) == "" || authorUserID == "" {
		return nil, fmt.Errorf("%w: product ID, content, and author ID are required", ErrInvalidArgument)
	}

	product, err := s.store.Products().GetByID(productID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	author, err := s.store.Users().GetByUserID(authorUserID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	comment := &models.Comment{
		Content:   content,
		AuthorID:  author.ID,
		ProductID: product.ID,
		CreatedAt: time.Now(),
	}
	err = s.store.Atomically(func(tx repositories.Store) error {
		if err := tx.Comments().Create(comment); err != nil {
			return err
		}
		return tx.Products().AdjustComments(product.ID, 1)
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	publishActivity(s.eventsMQ, "comment.added", map[string]interface{}{
		"commentID": comment.ID,
		"productID": product.ID,
		"authorID":  author.ID,
	})
	return comment, nil
}

// RemoveComment deletes a comment and decrements the owning product's
// comment counter in the same store transaction, keeping removal symmetric
// with AddComment.
func (s *CommentService) RemoveComment(commentID string) error {
	comment, err := s.store.Comments().GetByID(commentID)
	if err != nil {
		return mapStoreErr(err)
	}

	err = s.store.Atomically(func(tx repositories.Store) error {
		if err := tx.Comments().Delete(comment.ID); err != nil {
			return err
		}
		return tx.Products().AdjustComments(comment.ProductID, -1)
	})
	if err != nil {
		return mapStoreErr(err)
	}

	publishActivity(s.eventsMQ, "comment.removed", map[string]interface{}{
		"commentID": comment.ID,
		"productID": comment.ProductID,
	})
	return nil
}

// ListComments returns one page of a product's comments, newest first, with
// authors resolved, plus the total count. Pure read.
func (s *CommentService) ListComments(productID string, limit, offset int) (*CommentPage, error) {
	if limit < 0 || offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must be non-negative", ErrInvalidArgument)
	}

	comments, err := s.store.Comments().ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	total, err := s.store.Comments().CountByProduct(productID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if comments == nil {
		comments = []models.Comment{}
	}
	return &CommentPage{Comments: comments, Total: total}, nil
}
