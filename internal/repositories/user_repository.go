package repositories

import "upfound/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByUserID(userID string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	// AdjustUpvotes applies a relative change to the user's denormalized
	// vote counter. Only the vote ledger may call it.
	AdjustUpvotes(id string, delta int) error
}
