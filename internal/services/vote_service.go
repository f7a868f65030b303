package services

import (
	"time"

	"upfound/internal/models"
	"upfound/internal/repositories"
)

// VoteResult reports which way a toggle went.
type VoteResult string

const (
	VoteRecorded VoteResult = "recorded"
	VoteRemoved  VoteResult = "removed"
)

// VoteService is the vote ledger. It is the only mutation entry point for
// vote records and for the two denormalized upvote counters, and it keeps
// them consistent: for every product the counter equals the number of vote
// records, and likewise per user.
type VoteService struct {
	store    repositories.Store
	eventsMQ ActivityPublisher
}

// NewVoteService creates a new VoteService. eventsMQ may be nil.
func NewVoteService(store repositories.Store, eventsMQ ActivityPublisher) *VoteService {
	return &VoteService{
		store:    store,
		eventsMQ: eventsMQ,
	}
}

// ToggleVote flips the user's vote on a product. Removing an existing vote
// deletes the record and decrements both counters; recording a new vote
// inserts the record and increments both. The record mutation and the two
// counter mutations run in one store transaction, so a failure in any step
// leaves no partial state.
//
// The unique (user, product) index backs up the exists-check: if two toggles
// race, the loser's insert fails with a duplicate key and its transaction
// aborts, surfacing as ErrConflict instead of a double vote.
func (s *VoteService) ToggleVote(userID, productID string) (VoteResult, error) {
	if _, err := s.store.Users().GetByID(userID); err != nil {
		return "", mapStoreErr(err)
	}
	if _, err := s.store.Products().GetByID(productID); err != nil {
		return "", mapStoreErr(err)
	}

	var result VoteResult
	err := s.store.Atomically(func(tx repositories.Store) error {
		voted, err := tx.Votes().Exists(userID, productID)
		if err != nil {
			return err
		}

		delta := 1
		if voted {
			if err := tx.Votes().DeleteByUserAndProduct(userID, productID); err != nil {
				return err
			}
			delta = -1
			result = VoteRemoved
		} else {
			vote := &models.Vote{UserID: userID, ProductID: productID, CreatedAt: time.Now()}
			if err := tx.Votes().Create(vote); err != nil {
				return err
			}
			result = VoteRecorded
		}

		if err := tx.Products().AdjustUpvotes(productID, delta); err != nil {
			return err
		}
		return tx.Users().AdjustUpvotes(userID, delta)
	})
	if err != nil {
		return "", mapStoreErr(err)
	}

	publishActivity(s.eventsMQ, "vote."+string(result), map[string]interface{}{
		"userID":    userID,
		"productID": productID,
	})
	return result, nil
}
