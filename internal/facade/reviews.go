package facade

import (
	"context"
	"fmt"

	"hbnb/internal/models"
)

// NewReviewInput carries the fields for review creation. Rating is a pointer
// so a missing rating is distinguishable from zero.
type NewReviewInput struct {
	Text    string
	Rating  *int
	UserID  string
	PlaceID string
}

// ReviewUpdate carries a partial review update.
type ReviewUpdate struct {
	Text   *string
	Rating *int
}

// CreateReview validates the author and place exist, rejects owners
// reviewing their own place and second reviews for the same (author, place)
// pair, then builds and stores the review.
func (f *Facade) CreateReview(ctx context.Context, in NewReviewInput) (*models.Review, error) {
	switch {
	case in.UserID == "":
		return nil, &models.ValidationError{Field: "user_id", Message: "is required"}
	case in.PlaceID == "":
		return nil, &models.ValidationError{Field: "place_id", Message: "is required"}
	case in.Rating == nil:
		return nil, &models.ValidationError{Field: "rating", Message: "is required"}
	case in.Text == "":
		return nil, &models.ValidationError{Field: "text", Message: "is required"}
	}

	user, err := f.users.Get(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("user", in.UserID)
	}

	place, err := f.places.Get(ctx, in.PlaceID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, notFound("place", in.PlaceID)
	}

	if place.OwnerID == in.UserID {
		return nil, ErrSelfReview
	}

	existing, err := f.findReviewByUserAndPlace(ctx, in.UserID, in.PlaceID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateReview
	}

	review, err := models.NewReview(in.Text, *in.Rating, in.UserID, in.PlaceID)
	if err != nil {
		return nil, err
	}

	if err := f.reviews.Add(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to store review: %w", err)
	}
	f.logger.Info("review created", "review_id", review.ID, "place_id", review.PlaceID, "user_id", review.UserID)
	return review, nil
}

// GetReview retrieves a review by id.
func (f *Facade) GetReview(ctx context.Context, id string) (*models.Review, error) {
	review, err := f.reviews.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, notFound("review", id)
	}
	return review, nil
}

// GetAllReviews returns all reviews.
func (f *Facade) GetAllReviews(ctx context.Context) ([]*models.Review, error) {
	return f.reviews.GetAll(ctx)
}

// GetReviewsByPlace returns every review for a place, failing if the place
// itself does not exist.
func (f *Facade) GetReviewsByPlace(ctx context.Context, placeID string) ([]*models.Review, error) {
	place, err := f.places.Get(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, notFound("place", placeID)
	}

	all, err := f.reviews.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*models.Review, 0)
	for _, review := range all {
		if review.PlaceID == placeID {
			matched = append(matched, review)
		}
	}
	return matched, nil
}

// GetReviewsByUser returns every review written by a user, failing if the
// user does not exist.
func (f *Facade) GetReviewsByUser(ctx context.Context, userID string) ([]*models.Review, error) {
	user, err := f.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("user", userID)
	}

	all, err := f.reviews.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*models.Review, 0)
	for _, review := range all {
		if review.UserID == userID {
			matched = append(matched, review)
		}
	}
	return matched, nil
}

// GetReviewByUserAndPlace returns the single review a user left on a place.
func (f *Facade) GetReviewByUserAndPlace(ctx context.Context, userID, placeID string) (*models.Review, error) {
	review, err := f.findReviewByUserAndPlace(ctx, userID, placeID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, notFound("review", userID+"/"+placeID)
	}
	return review, nil
}

// UpdateReview applies a partial update to a review's text or rating.
func (f *Facade) UpdateReview(ctx context.Context, id string, in ReviewUpdate) (*models.Review, error) {
	review, err := f.reviews.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, notFound("review", id)
	}

	updated := *review
	if in.Text != nil {
		if err := updated.SetText(*in.Text); err != nil {
			return nil, err
		}
	}
	if in.Rating != nil {
		if err := updated.SetRating(*in.Rating); err != nil {
			return nil, err
		}
	}

	if err := f.reviews.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return &updated, nil
}

// DeleteReview removes a review.
func (f *Facade) DeleteReview(ctx context.Context, id string) error {
	deleted, err := f.reviews.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound("review", id)
	}
	f.logger.Info("review deleted", "review_id", id)
	return nil
}

func (f *Facade) findReviewByUserAndPlace(ctx context.Context, userID, placeID string) (*models.Review, error) {
	all, err := f.reviews.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, review := range all {
		if review.UserID == userID && review.PlaceID == placeID {
			return review, nil
		}
	}
	return nil, nil
}
