// Package storage defines the persistence contract shared by all backends.
package storage

import (
	"context"
	"errors"

	"hbnb/internal/models"
)

var (
	// ErrDuplicateID is returned by Add when an entity with the same ID is
	// already stored. Backends must never silently overwrite.
	ErrDuplicateID = errors.New("entity with this id already exists")

	// ErrNotFound is returned by Update when no entity has the given ID.
	// Lookups signal a miss with a zero value instead, not with this error.
	ErrNotFound = errors.New("entity not found")
)

// Repository is generic CRUD storage for a single entity type. It knows
// nothing about entity-specific rules; cross-entity invariants live in the
// facade, which must behave identically no matter which implementation backs
// it.
//
// Get and GetByAttribute return the zero value (nil pointer) with a nil error
// when nothing matches. Errors are reserved for storage failures.
type Repository[T models.Entity] interface {
	// Add stores the entity under its own ID. Fails with ErrDuplicateID if
	// the ID is already present.
	Add(ctx context.Context, entity T) error

	// Get looks up an entity by ID.
	Get(ctx context.Context, id string) (T, error)

	// GetAll returns a snapshot of all entities. The in-memory backend
	// yields insertion order; others define their own, so callers must not
	// rely on any ordering.
	GetAll(ctx context.Context) ([]T, error)

	// Update replaces the stored record keyed by the entity's ID. Fails
	// with ErrNotFound if the ID is absent; it never creates a record.
	Update(ctx context.Context, entity T) error

	// Delete removes the entity and reports whether anything was removed.
	Delete(ctx context.Context, id string) (bool, error)

	// GetByAttribute returns the first entity whose column (named by its
	// db tag) equals value.
	GetByAttribute(ctx context.Context, column string, value any) (T, error)
}
