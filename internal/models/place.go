package models

import "slices"

const (
	maxTitleLen       = 100
	maxDescriptionLen = 1000
)

// Place is a rental listing. OwnerID must resolve to an existing User and
// every AmenityID to an existing Amenity; the facade checks both before a
// place is stored.
type Place struct {
	Base
	Title       string  `db:"title"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Latitude    float64 `db:"latitude"`
	Longitude   float64 `db:"longitude"`
	OwnerID     string  `db:"owner_id"`

	// AmenityIDs lives in the place_amenity join table, not a column.
	AmenityIDs []string `db:"-"`
}

// NewPlace validates all fields and returns a place with a fresh identity.
func NewPlace(title, description string, price, latitude, longitude float64, ownerID string) (*Place, error) {
	p := &Place{Base: newBase(), OwnerID: ownerID}
	if err := p.SetTitle(title); err != nil {
		return nil, err
	}
	if err := p.SetDescription(description); err != nil {
		return nil, err
	}
	if err := p.SetPrice(price); err != nil {
		return nil, err
	}
	if err := p.SetLatitude(latitude); err != nil {
		return nil, err
	}
	if err := p.SetLongitude(longitude); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Place) SetTitle(title string) error {
	if title == "" {
		return invalid("title", "is required")
	}
	if len(title) > maxTitleLen {
		return invalid("title", "must be at most 100 characters")
	}
	p.Title = title
	p.touch()
	return nil
}

func (p *Place) SetDescription(description string) error {
	if len(description) > maxDescriptionLen {
		return invalid("description", "must be at most 1000 characters")
	}
	p.Description = description
	p.touch()
	return nil
}

func (p *Place) SetPrice(price float64) error {
	if price < 0 {
		return invalid("price", "must be non-negative")
	}
	p.Price = price
	p.touch()
	return nil
}

func (p *Place) SetLatitude(latitude float64) error {
	if latitude < -90 || latitude > 90 {
		return invalid("latitude", "must be between -90 and 90")
	}
	p.Latitude = latitude
	p.touch()
	return nil
}

func (p *Place) SetLongitude(longitude float64) error {
	if longitude < -180 || longitude > 180 {
		return invalid("longitude", "must be between -180 and 180")
	}
	p.Longitude = longitude
	p.touch()
	return nil
}

func (p *Place) SetOwnerID(ownerID string) error {
	if ownerID == "" {
		return invalid("owner_id", "is required")
	}
	p.OwnerID = ownerID
	p.touch()
	return nil
}

// SetAmenityIDs replaces the amenity set, dropping duplicates while keeping
// first-seen order.
func (p *Place) SetAmenityIDs(ids []string) {
	deduped := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(deduped, id) {
			deduped = append(deduped, id)
		}
	}
	p.AmenityIDs = deduped
	p.touch()
}
