package service

import (
	"errors"

	"github.com/kidnest/kidnest-backend/internal/repository"
)

// Common service errors. Handlers map these to response codes; store and
// driver failure detail never crosses the HTTP boundary.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("role lacks permission for this operation")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidState = errors.New("no feedback found to withdraw")
)

// mapNotFound converts repository lookup misses to the service sentinel.
func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
