package facade

import (
	"context"
	"fmt"
	"strings"

	"hbnb/internal/models"
)

// AmenityUpdate carries a partial amenity update.
type AmenityUpdate struct {
	Name *string
}

// CreateAmenity creates an amenity after checking no other amenity carries
// the same name in any casing.
func (f *Facade) CreateAmenity(ctx context.Context, name string) (*models.Amenity, error) {
	amenity, err := models.NewAmenity(name)
	if err != nil {
		return nil, err
	}

	dup, err := f.findAmenityByName(ctx, name, "")
	if err != nil {
		return nil, err
	}
	if dup != nil {
		return nil, ErrDuplicateName
	}

	if err := f.amenities.Add(ctx, amenity); err != nil {
		return nil, fmt.Errorf("failed to store amenity: %w", err)
	}
	f.logger.Info("amenity created", "amenity_id", amenity.ID, "name", amenity.Name)
	return amenity, nil
}

// GetAmenity retrieves an amenity by id.
func (f *Facade) GetAmenity(ctx context.Context, id string) (*models.Amenity, error) {
	amenity, err := f.amenities.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if amenity == nil {
		return nil, notFound("amenity", id)
	}
	return amenity, nil
}

// GetAllAmenities returns all amenities.
func (f *Facade) GetAllAmenities(ctx context.Context) ([]*models.Amenity, error) {
	return f.amenities.GetAll(ctx)
}

// GetAmenityByName retrieves an amenity by name, case-insensitively, to
// match the uniqueness rule.
func (f *Facade) GetAmenityByName(ctx context.Context, name string) (*models.Amenity, error) {
	amenity, err := f.findAmenityByName(ctx, name, "")
	if err != nil {
		return nil, err
	}
	if amenity == nil {
		return nil, notFound("amenity", name)
	}
	return amenity, nil
}

// UpdateAmenity renames an amenity, re-running the duplicate scan while
// excluding the amenity itself so a pure re-casing is allowed.
func (f *Facade) UpdateAmenity(ctx context.Context, id string, in AmenityUpdate) (*models.Amenity, error) {
	amenity, err := f.amenities.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if amenity == nil {
		return nil, notFound("amenity", id)
	}

	updated := *amenity
	if in.Name != nil {
		dup, err := f.findAmenityByName(ctx, *in.Name, id)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, ErrDuplicateName
		}
		if err := updated.SetName(*in.Name); err != nil {
			return nil, err
		}
	}

	if err := f.amenities.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update amenity: %w", err)
	}
	return &updated, nil
}

// DeleteAmenity removes an amenity, detaching it from every place that
// references it.
func (f *Facade) DeleteAmenity(ctx context.Context, id string) error {
	amenity, err := f.amenities.Get(ctx, id)
	if err != nil {
		return err
	}
	if amenity == nil {
		return notFound("amenity", id)
	}

	places, err := f.places.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, place := range places {
		kept := place.AmenityIDs[:0:0]
		for _, amenityID := range place.AmenityIDs {
			if amenityID != id {
				kept = append(kept, amenityID)
			}
		}
		if len(kept) == len(place.AmenityIDs) {
			continue
		}
		detached := *place
		detached.SetAmenityIDs(kept)
		if err := f.places.Update(ctx, &detached); err != nil {
			return err
		}
	}

	if _, err := f.amenities.Delete(ctx, id); err != nil {
		return err
	}
	f.logger.Info("amenity deleted", "amenity_id", id)
	return nil
}

// findAmenityByName scans all amenities for a case-insensitive name match,
// skipping excludeID so updates don't collide with themselves.
func (f *Facade) findAmenityByName(ctx context.Context, name, excludeID string) (*models.Amenity, error) {
	all, err := f.amenities.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, amenity := range all {
		if amenity.ID != excludeID && strings.EqualFold(amenity.Name, name) {
			return amenity, nil
		}
	}
	return nil, nil
}
