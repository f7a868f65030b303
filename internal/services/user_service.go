package services

import (
	"fmt"

	"upfound/internal/models"
	"upfound/internal/repositories"
)

// SubmissionPage is one page of a user's submitted products plus the total.
type SubmissionPage struct {
	Submissions []models.Product `json:"submissions"`
	Total       int64            `json:"total"`
}

// VotedProductsPage is one page of products a user has voted for plus the
// total number of their votes.
type VotedProductsPage struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
}

// UserService serves public user profiles and per-user listings. Users are
// addressed by their public id, never the primary key.
type UserService struct {
	store repositories.Store
}

// NewUserService creates a new UserService.
func NewUserService(store repositories.Store) *UserService {
	return &UserService{
		store: store,
	}
}

// GetProfile returns the public profile. TotalSubmissions and TotalVotes
// are recomputed from the product and vote record sets, so the profile
// never shows a drifted counter.
func (s *UserService) GetProfile(userID string) (*models.Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", ErrInvalidArgument)
	}
	user, err := s.store.Users().GetByUserID(userID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	totalSubmissions, err := s.store.Products().CountBySubmitter(user.ID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	totalVotes, err := s.store.Votes().CountByUser(user.ID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	return &models.Profile{
		User:             *user,
		TotalSubmissions: totalSubmissions,
		TotalVotes:       totalVotes,
	}, nil
}

// Submissions returns one page of the user's submitted products, newest
// first. page is 1-based.
func (s *UserService) Submissions(userID string, page, limit int) (*SubmissionPage, error) {
	user, offset, err := s.resolvePage(userID, page, limit)
	if err != nil {
		return nil, err
	}

	products, err := s.store.Products().ListBySubmitter(user.ID, limit, offset)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	total, err := s.store.Products().CountBySubmitter(user.ID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if products == nil {
		products = []models.Product{}
	}
	return &SubmissionPage{Submissions: products, Total: total}, nil
}

// VotedProducts returns one page of products the user has voted for,
// newest vote first. page is 1-based.
func (s *UserService) VotedProducts(userID string, page, limit int) (*VotedProductsPage, error) {
	user, offset, err := s.resolvePage(userID, page, limit)
	if err != nil {
		return nil, err
	}

	votes, err := s.store.Votes().ListByUser(user.ID, limit, offset)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	total, err := s.store.Votes().CountByUser(user.ID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	products := make([]models.Product, 0, len(votes))
	for _, vote := range votes {
		if vote.Product != nil {
			products = append(products, *vote.Product)
		}
	}
	return &VotedProductsPage{Products: products, Total: total}, nil
}

func (s *UserService) resolvePage(userID string, page, limit int) (*models.User, int, error) {
	if userID == "" {
		return nil, 0, fmt.Errorf("%w: user ID is required", ErrInvalidArgument)
	}
	if page < 1 || limit < 0 {
		return nil, 0, fmt.Errorf("%w: page must be positive and limit non-negative", ErrInvalidArgument)
	}
	user, err := s.store.Users().GetByUserID(userID)
	if err != nil {
		return nil, 0, mapStoreErr(err)
	}
	return user, (page - 1) * limit, nil
}
