// Package facade is the single component through which all entity mutations
// and cross-entity validations pass. Route handlers never talk to
// repositories directly, and the facade never branches on which storage
// backend is in use.
//
// Field-level validation belongs to the models package; the facade only
// enforces rules that span entities: uniqueness, existence of referenced
// entities, review business rules and delete policies.
package facade

import (
	"log/slog"

	"hbnb/internal/models"
	"hbnb/internal/storage"
)

// Facade orchestrates the four entity repositories. It holds no other state;
// construct it once at startup and pass it into the request-handling layer.
type Facade struct {
	users     storage.Repository[*models.User]
	places    storage.Repository[*models.Place]
	amenities storage.Repository[*models.Amenity]
	reviews   storage.Repository[*models.Review]
	logger    *slog.Logger
}

// New creates a facade over the given repositories.
func New(
	users storage.Repository[*models.User],
	places storage.Repository[*models.Place],
	amenities storage.Repository[*models.Amenity],
	reviews storage.Repository[*models.Review],
	logger *slog.Logger,
) *Facade {
	return &Facade{
		users:     users,
		places:    places,
		amenities: amenities,
		reviews:   reviews,
		logger:    logger,
	}
}
