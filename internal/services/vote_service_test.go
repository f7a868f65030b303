package services

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"upfound/internal/repositories"
)

func TestToggleVoteRecordsAndRemoves(t *testing.T) {
	store := repositories.NewMockStore()
	events := &capturingPublisher{}
	service := NewVoteService(store, events)

	user := seedUser(t, store, "Ada", "ada0000001", "ada@example.com")
	product := seedProduct(t, store, "Widget", "DevTools", user.ID, time.Now())

	// First toggle records the vote and bumps both counters.
	result, err := service.ToggleVote(user.ID, product.ID)
	assert.NoError(t, err)
	assert.Equal(t, VoteRecorded, result)

	updatedProduct, err := store.Products().GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, updatedProduct.Upvotes)
	updatedUser, err := store.Users().GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, updatedUser.Upvotes)

	voted, err := store.Votes().Exists(user.ID, product.ID)
	assert.NoError(t, err)
	assert.True(t, voted)

	// Second toggle removes it again and restores both counters.
	result, err = service.ToggleVote(user.ID, product.ID)
	assert.NoError(t, err)
	assert.Equal(t, VoteRemoved, result)

	updatedProduct, err = store.Products().GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, updatedProduct.Upvotes)
	updatedUser, err = store.Users().GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, updatedUser.Upvotes)

	voted, err = store.Votes().Exists(user.ID, product.ID)
	assert.NoError(t, err)
	assert.False(t, voted)

	assert.Equal(t, []string{"vote.recorded", "vote.removed"}, events.routingKeys())
}

func TestToggleVoteUnknownUser(t *testing.T) {
	store := repositories.NewMockStore()
	service := NewVoteService(store, nil)

	user := seedUser(t, store, "Ada", "ada0000001", "ada@example.com")
	product := seedProduct(t, store, "Widget", "DevTools", user.ID, time.Now())

	_, err := service.ToggleVote("no-such-user", product.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleVoteUnknownProduct(t *testing.T) {
	store := repositories.NewMockStore()
	service := NewVoteService(store, nil)

	user := seedUser(t, store, "Ada", "ada0000001", "ada@example.com")

	_, err := service.ToggleVote(user.ID, "no-such-product")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleVoteCounterMatchesRecords(t *testing.T) {
	store := repositories.NewMockStore()
	service := NewVoteService(store, nil)

	submitter := seedUser(t, store, "Sam", "sam0000001", "sam@example.com")
	product := seedProduct(t, store, "Widget", "DevTools", submitter.ID, time.Now())

	const voters = 8
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		user := seedUser(t, store,
			fmt.Sprintf("Voter%d", i),
			fmt.Sprintf("voter%05d", i),
			fmt.Sprintf("voter%d@example.com", i))
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			_, err := service.ToggleVote(userID, product.ID)
			assert.NoError(t, err)
		}(user.ID)
	}
	wg.Wait()

	// The counter must equal the number of vote records regardless of the
	// interleaving.
	count, err := store.Votes().CountByProduct(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(voters), count)

	updated, err := store.Products().GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, voters, updated.Upvotes)
}

func TestToggleVoteConcurrentSamePair(t *testing.T) {
	store := repositories.NewMockStore()
	service := NewVoteService(store, nil)

	user := seedUser(t, store, "Ada", "ada0000001", "ada@example.com")
	product := seedProduct(t, store, "Widget", "DevTools", user.ID, time.Now())

	const toggles = 9
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := service.ToggleVote(user.ID, product.ID); err != nil {
				// A toggle losing the race to a duplicate insert aborts as a
				// conflict; it must not leave partial state behind.
				assert.ErrorIs(t, err, ErrConflict)
			}
		}()
	}
	wg.Wait()

	// However the calls interleave, at most one vote record exists and both
	// counters equal the record count.
	count, err := store.Votes().CountByProduct(product.ID)
	assert.NoError(t, err)
	assert.LessOrEqual(t, count, int64(1))

	updatedProduct, err := store.Products().GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, int(count), updatedProduct.Upvotes)

	updatedUser, err := store.Users().GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, int(count), updatedUser.Upvotes)
}

// adjustFailStore wraps a Store so that product counter adjustments fail
// inside transactions, forcing the rollback path.
type adjustFailStore struct {
	repositories.Store
}

func (s *adjustFailStore) Atomically(fn func(repositories.Store) error) error {
	return s.Store.Atomically(func(tx repositories.Store) error {
		return fn(&adjustFailStore{tx})
	})
}

func (s *adjustFailStore) Products() repositories.ProductRepository {
	return &adjustFailProducts{s.Store.Products()}
}

type adjustFailProducts struct {
	repositories.ProductRepository
}

func (r *adjustFailProducts) AdjustUpvotes(id string, delta int) error {
	return errInjected
}

var errInjected = errors.New("injected counter failure")

func TestToggleVoteFailureLeavesNoPartialState(t *testing.T) {
	mock := repositories.NewMockStore()
	user := seedUser(t, mock, "Ada", "ada0000001", "ada@example.com")
	product := seedProduct(t, mock, "Widget", "DevTools", user.ID, time.Now())

	service := NewVoteService(&adjustFailStore{mock}, nil)

	_, err := service.ToggleVote(user.ID, product.ID)
	assert.Error(t, err)

	// The aborted transaction must leave neither a vote record nor a
	// counter change behind.
	voted, err := mock.Votes().Exists(user.ID, product.ID)
	assert.NoError(t, err)
	assert.False(t, voted)

	updatedProduct, err := mock.Products().GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, updatedProduct.Upvotes)
	updatedUser, err := mock.Users().GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, updatedUser.Upvotes)
}
