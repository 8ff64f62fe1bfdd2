package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"hbnb/internal/models"
	"hbnb/internal/storage"
)

var _ storage.Repository[*models.Place] = (*places)(nil)

var placeColumns = []any{
	"id", "created_at", "updated_at", "title", "description",
	"price", "latitude", "longitude", "owner_id",
}

// places implements storage.Repository for Place. A place row and its
// place_amenity join rows are always written in the same transaction, so a
// failure never leaves the amenity set half-applied.
type places struct {
	db *goqu.Database
}

func newPlaces(db *goqu.Database) *places {
	return &places{db: db}
}

func (p *places) Add(ctx context.Context, place *models.Place) error {
	err := p.db.WithTx(func(tx *goqu.TxDatabase) error {
		if _, err := tx.Insert("places").Rows(place).Prepared(true).Executor().ExecContext(ctx); err != nil {
			return err
		}
		return insertPlaceAmenities(ctx, tx, place.ID, place.AmenityIDs)
	})
	if err != nil {
		if isDuplicateID(err, "places") {
			return storage.ErrDuplicateID
		}
		return fmt.Errorf("failed to insert place: %w", err)
	}
	return nil
}

func (p *places) Get(ctx context.Context, id string) (*models.Place, error) {
	return p.GetByAttribute(ctx, "id", id)
}

func (p *places) GetAll(ctx context.Context) ([]*models.Place, error) {
	var all []*models.Place
	err := p.db.From("places").Select(placeColumns...).ScanStructsContext(ctx, &all)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	for _, place := range all {
		if place.AmenityIDs, err = p.amenityIDs(ctx, place.ID); err != nil {
			return nil, err
		}
	}
	return all, nil
}

func (p *places) Update(ctx context.Context, place *models.Place) error {
	err := p.db.WithTx(func(tx *goqu.TxDatabase) error {
		res, err := tx.Update("places").Set(place).
			Where(goqu.Ex{"id": place.ID}).
			Prepared(true).Executor().ExecContext(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return storage.ErrNotFound
		}

		// Rewrite the amenity set wholesale; the sets are tiny.
		if _, err := tx.Delete("place_amenity").Where(goqu.Ex{"place_id": place.ID}).
			Prepared(true).Executor().ExecContext(ctx); err != nil {
			return err
		}
		return insertPlaceAmenities(ctx, tx, place.ID, place.AmenityIDs)
	})
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to update place: %w", err)
	}
	return err
}

func (p *places) Delete(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := p.db.WithTx(func(tx *goqu.TxDatabase) error {
		// Join rows go with the place via ON DELETE CASCADE.
		res, err := tx.Delete("places").Where(goqu.Ex{"id": id}).
			Prepared(true).Executor().ExecContext(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		removed = affected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete place: %w", err)
	}
	return removed, nil
}

func (p *places) GetByAttribute(ctx context.Context, column string, value any) (*models.Place, error) {
	place := &models.Place{}
	found, err := p.db.From("places").Select(placeColumns...).
		Where(goqu.Ex{column: value}).Limit(1).
		ScanStructContext(ctx, place)
	if err != nil {
		return nil, fmt.Errorf("failed to query places by %s: %w", column, err)
	}
	if !found {
		return nil, nil
	}
	if place.AmenityIDs, err = p.amenityIDs(ctx, place.ID); err != nil {
		return nil, err
	}
	return place, nil
}

func (p *places) amenityIDs(ctx context.Context, placeID string) ([]string, error) {
	var ids []string
	err := p.db.From("place_amenity").Select("amenity_id").
		Where(goqu.Ex{"place_id": placeID}).
		Order(goqu.C("amenity_id").Asc()).
		ScanValsContext(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load place amenities: %w", err)
	}
	return ids, nil
}

func insertPlaceAmenities(ctx context.Context, tx *goqu.TxDatabase, placeID string, amenityIDs []string) error {
	for _, amenityID := range amenityIDs {
		_, err := tx.Insert("place_amenity").
			Rows(goqu.Record{"place_id": placeID, "amenity_id": amenityID}).
			Prepared(true).Executor().ExecContext(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}
