package models

const maxReviewLen = 1000

// Review is a rating plus text a user leaves on a place. A user may review a
// given place once and never their own; the facade enforces both rules.
type Review struct {
	Base
	Text    string `db:"text"`
	Rating  int    `db:"rating"`
	UserID  string `db:"user_id"`
	PlaceID string `db:"place_id"`
}

// NewReview validates the fields and returns a review with a fresh identity.
func NewReview(text string, rating int, userID, placeID string) (*Review, error) {
	r := &Review{Base: newBase(), UserID: userID, PlaceID: placeID}
	if err := r.SetText(text); err != nil {
		return nil, err
	}
	if err := r.SetRating(rating); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Review) SetText(text string) error {
	if text == "" {
		return invalid("text", "is required")
	}
	if len(text) > maxReviewLen {
		return invalid("text", "must be at most 1000 characters")
	}
	r.Text = text
	r.touch()
	return nil
}

func (r *Review) SetRating(rating int) error {
	if rating < 1 || rating > 5 {
		return invalid("rating", "must be between 1 and 5")
	}
	r.Rating = rating
	r.touch()
	return nil
}
