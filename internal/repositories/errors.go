package repositories

import "errors"

// Sentinel errors returned by every repository implementation so callers can
// branch with errors.Is instead of matching message strings.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an insert violates a unique
	// constraint, e.g. a second vote for the same (user, product) pair.
	ErrDuplicateKey = errors.New("duplicate key")
)
