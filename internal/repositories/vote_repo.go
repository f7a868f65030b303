package repositories

import "upfound/internal/models"

// VoteRepository defines the interface for vote record access. The store
// enforces at most one vote per (user, product); Create returns
// ErrDuplicateKey when a second insert races past the ledger's exists-check.
type VoteRepository interface {
	Create(vote *models.Vote) error
	GetByUserAndProduct(userID, productID string) (*models.Vote, error)
	DeleteByUserAndProduct(userID, productID string) error
	Exists(userID, productID string) (bool, error)
	CountByProduct(productID string) (int64, error)
	CountByUser(userID string) (int64, error)
	// ListByUser returns the user's votes newest-first with the voted
	// product resolved.
	ListByUser(userID string, limit, offset int) ([]models.Vote, error)
}
