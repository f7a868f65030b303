package repositories

import (
	"fmt"

	"gorm.io/gorm"
)

// GORMStore implements Store over a gorm database handle.
type GORMStore struct {
	db *gorm.DB
}

// NewGORMStore creates a new GORMStore. The handle should be opened with
// TranslateError enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey.
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{
		db: db,
	}
}

// Users returns a user repository bound to this store's handle.
func (s *GORMStore) Users() UserRepository {
	return NewGORMUserRepository(s.db)
}

// Products returns a product repository bound to this store's handle.
func (s *GORMStore) Products() ProductRepository {
	return NewGORMProductRepository(s.db)
}

// Votes returns a vote repository bound to this store's handle.
func (s *GORMStore) Votes() VoteRepository {
	return NewGORMVoteRepository(s.db)
}

// Comments returns a comment repository bound to this store's handle.
func (s *GORMStore) Comments() CommentRepository {
	return NewGORMCommentRepository(s.db)
}

// Atomically runs fn inside one database transaction. Every repository
// reached through the Store passed to fn shares that transaction, so the
// constituent writes commit together or roll back together.
func (s *GORMStore) Atomically(fn func(Store) error) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMStore(tx))
	})
	if err != nil {
		return fmt.Errorf("transaction aborted: %w", err)
	}
	return nil
}
