package models

import (
	"time"

	"github.com/google/uuid"
)

// Entity is implemented by every stored model.
type Entity interface {
	// EntityID returns the unique identifier assigned at creation.
	EntityID() string
}

// Base holds the identity and timestamps shared by all entities.
type Base struct {
	// ID is the unique identifier (UUID format).
	ID string `db:"id"`

	// CreatedAt is the Unix timestamp when the entity was created.
	CreatedAt int64 `db:"created_at"`

	// UpdatedAt is the Unix timestamp of the last field change.
	UpdatedAt int64 `db:"updated_at"`
}

func newBase() Base {
	now := time.Now().Unix()
	return Base{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EntityID returns the entity's identifier.
func (b *Base) EntityID() string { return b.ID }

// touch re-stamps the update time. Every setter calls it after mutating.
func (b *Base) touch() { b.UpdatedAt = time.Now().Unix() }
