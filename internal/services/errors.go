package services

import (
	"errors"
	"fmt"

	"upfound/internal/repositories"
)

// Stable error kinds exposed by every service operation. Handlers map them
// to HTTP statuses with errors.Is; anything not matching one of these is an
// internal error.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
)

// mapStoreErr lifts repository sentinels into the service taxonomy so a
// missing record or duplicate key keeps its kind across the layer boundary.
func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, repositories.ErrDuplicateKey):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return err
	}
}
