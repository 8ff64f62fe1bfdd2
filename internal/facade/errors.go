package facade

import (
	"errors"
	"fmt"
)

// Failure taxonomy raised by facade operations, on top of
// models.ValidationError for field-level problems. The HTTP layer maps each
// of these to a status code; the mapping is identical across entity types.
var (
	// ErrNotFound is wrapped with the entity kind and id that missed,
	// e.g. "owner abc-123: resource not found".
	ErrNotFound = errors.New("resource not found")

	ErrEmailExists     = errors.New("email already registered")
	ErrDuplicateName   = errors.New("amenity with this name already exists")
	ErrDuplicateReview = errors.New("user has already reviewed this place")
	ErrSelfReview      = errors.New("owners cannot review their own place")
	ErrUserOwnsPlaces  = errors.New("user still owns places")
)

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}
