package repositories

// Store bundles the per-entity repositories behind a single unit-of-work
// boundary. Atomically runs fn against a Store whose repositories share one
// transaction: every write inside fn commits together, or none apply.
//
// The vote and comment ledgers are the only callers of Atomically; all
// counter mutations happen inside it, never through ad-hoc updates.
type Store interface {
	Users() UserRepository
	Products() ProductRepository
	Votes() VoteRepository
	Comments() CommentRepository

	Atomically(fn func(Store) error) error
}
