package facade

import (
	"context"
	"fmt"

	"hbnb/internal/models"
)

// NewPlaceInput carries the fields for place creation. Numeric fields are
// pointers so a missing field is distinguishable from a zero value.
type NewPlaceInput struct {
	Title       string
	Description string
	Price       *float64
	Latitude    *float64
	Longitude   *float64
	OwnerID     string
	AmenityIDs  []string
}

// PlaceUpdate carries a partial place update; nil fields are left untouched.
// A nil AmenityIDs keeps the current set, an empty one clears it.
type PlaceUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	Latitude    *float64
	Longitude   *float64
	OwnerID     *string
	AmenityIDs  []string
}

// CreatePlace validates presence of the required fields (reporting the first
// one missing), resolves the owner and every amenity reference, then builds
// and stores the place.
func (f *Facade) CreatePlace(ctx context.Context, in NewPlaceInput) (*models.Place, error) {
	switch {
	case in.Title == "":
		return nil, &models.ValidationError{Field: "title", Message: "is required"}
	case in.Price == nil:
		return nil, &models.ValidationError{Field: "price", Message: "is required"}
	case in.Latitude == nil:
		return nil, &models.ValidationError{Field: "latitude", Message: "is required"}
	case in.Longitude == nil:
		return nil, &models.ValidationError{Field: "longitude", Message: "is required"}
	case in.OwnerID == "":
		return nil, &models.ValidationError{Field: "owner_id", Message: "is required"}
	}

	owner, err := f.users.Get(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, notFound("owner", in.OwnerID)
	}
	if err := f.checkAmenitiesExist(ctx, in.AmenityIDs); err != nil {
		return nil, err
	}

	place, err := models.NewPlace(in.Title, in.Description, *in.Price, *in.Latitude, *in.Longitude, in.OwnerID)
	if err != nil {
		return nil, err
	}
	place.SetAmenityIDs(in.AmenityIDs)

	if err := f.places.Add(ctx, place); err != nil {
		return nil, fmt.Errorf("failed to store place: %w", err)
	}
	f.logger.Info("place created", "place_id", place.ID, "owner_id", place.OwnerID)
	return place, nil
}

// GetPlace retrieves a place by id.
func (f *Facade) GetPlace(ctx context.Context, id string) (*models.Place, error) {
	place, err := f.places.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, notFound("place", id)
	}
	return place, nil
}

// GetAllPlaces returns all places.
func (f *Facade) GetAllPlaces(ctx context.Context) ([]*models.Place, error) {
	return f.places.GetAll(ctx)
}

// GetPlacesByOwner returns every place owned by the given user.
func (f *Facade) GetPlacesByOwner(ctx context.Context, ownerID string) ([]*models.Place, error) {
	all, err := f.places.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	owned := make([]*models.Place, 0)
	for _, place := range all {
		if place.OwnerID == ownerID {
			owned = append(owned, place)
		}
	}
	return owned, nil
}

// UpdatePlace applies a partial update, re-validating owner and amenity
// references exactly as creation does, but only for supplied fields.
func (f *Facade) UpdatePlace(ctx context.Context, id string, in PlaceUpdate) (*models.Place, error) {
	place, err := f.places.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, notFound("place", id)
	}

	if in.OwnerID != nil {
		owner, err := f.users.Get(ctx, *in.OwnerID)
		if err != nil {
			return nil, err
		}
		if owner == nil {
			return nil, notFound("owner", *in.OwnerID)
		}
	}
	if in.AmenityIDs != nil {
		if err := f.checkAmenitiesExist(ctx, in.AmenityIDs); err != nil {
			return nil, err
		}
	}

	updated := *place
	updated.AmenityIDs = append([]string(nil), place.AmenityIDs...)
	if in.Title != nil {
		if err := updated.SetTitle(*in.Title); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		if err := updated.SetDescription(*in.Description); err != nil {
			return nil, err
		}
	}
	if in.Price != nil {
		if err := updated.SetPrice(*in.Price); err != nil {
			return nil, err
		}
	}
	if in.Latitude != nil {
		if err := updated.SetLatitude(*in.Latitude); err != nil {
			return nil, err
		}
	}
	if in.Longitude != nil {
		if err := updated.SetLongitude(*in.Longitude); err != nil {
			return nil, err
		}
	}
	if in.OwnerID != nil {
		if err := updated.SetOwnerID(*in.OwnerID); err != nil {
			return nil, err
		}
	}
	if in.AmenityIDs != nil {
		updated.SetAmenityIDs(in.AmenityIDs)
	}

	if err := f.places.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update place: %w", err)
	}
	return &updated, nil
}

// DeletePlace removes a place along with its reviews.
func (f *Facade) DeletePlace(ctx context.Context, id string) error {
	place, err := f.places.Get(ctx, id)
	if err != nil {
		return err
	}
	if place == nil {
		return notFound("place", id)
	}

	reviews, err := f.reviews.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, review := range reviews {
		if review.PlaceID == id {
			if _, err := f.reviews.Delete(ctx, review.ID); err != nil {
				return err
			}
		}
	}

	if _, err := f.places.Delete(ctx, id); err != nil {
		return err
	}
	f.logger.Info("place deleted", "place_id", id)
	return nil
}

func (f *Facade) checkAmenitiesExist(ctx context.Context, amenityIDs []string) error {
	for _, amenityID := range amenityIDs {
		amenity, err := f.amenities.Get(ctx, amenityID)
		if err != nil {
			return err
		}
		if amenity == nil {
			return notFound("amenity", amenityID)
		}
	}
	return nil
}
