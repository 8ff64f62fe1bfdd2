package models

// Amenity is a feature a place can offer (e.g. "WiFi"). Names are unique
// case-insensitively across all amenities; the facade enforces that.
type Amenity struct {
	Base
	Name string `db:"name"`
}

// NewAmenity validates the name and returns an amenity with a fresh identity.
func NewAmenity(name string) (*Amenity, error) {
	a := &Amenity{Base: newBase()}
	if err := a.SetName(name); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Amenity) SetName(name string) error {
	if name == "" {
		return invalid("name", "is required")
	}
	if len(name) > 100 {
		return invalid("name", "must be at most 100 characters")
	}
	a.Name = name
	a.touch()
	return nil
}
