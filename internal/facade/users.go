package facade

import (
	"context"
	"fmt"

	"hbnb/internal/auth"
	"hbnb/internal/models"
)

// NewUserInput carries the fields for user registration.
type NewUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	IsAdmin   bool
}

// UserUpdate carries a partial user update; nil fields are left untouched.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	IsAdmin   *bool
}

// CreateUser registers a user after checking the email is not taken. The
// password is hashed before it reaches the model.
func (f *Facade) CreateUser(ctx context.Context, in NewUserInput) (*models.User, error) {
	if err := auth.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	existing, err := f.users.GetByAttribute(ctx, "email", in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	user, err := models.NewUser(in.FirstName, in.LastName, in.Email, in.IsAdmin)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user.SetPasswordHash(hash)

	if err := f.users.Add(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to store user: %w", err)
	}
	f.logger.Info("user created", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// GetUser retrieves a user by id.
func (f *Facade) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := f.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("user", id)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their exact email address.
func (f *Facade) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := f.users.GetByAttribute(ctx, "email", email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("user", email)
	}
	return user, nil
}

// GetAllUsers returns all users.
func (f *Facade) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return f.users.GetAll(ctx)
}

// UpdateUser applies a partial update, re-validating changed fields. The
// stored record is only replaced once every field has passed.
func (f *Facade) UpdateUser(ctx context.Context, id string, in UserUpdate) (*models.User, error) {
	user, err := f.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("user", id)
	}

	if in.Email != nil && *in.Email != user.Email {
		dup, err := f.users.GetByAttribute(ctx, "email", *in.Email)
		if err != nil {
			return nil, err
		}
		if dup != nil && dup.ID != id {
			return nil, ErrEmailExists
		}
	}

	// Work on a copy so a failed validation leaves the store untouched.
	updated := *user
	if in.FirstName != nil {
		if err := updated.SetFirstName(*in.FirstName); err != nil {
			return nil, err
		}
	}
	if in.LastName != nil {
		if err := updated.SetLastName(*in.LastName); err != nil {
			return nil, err
		}
	}
	if in.Email != nil {
		if err := updated.SetEmail(*in.Email); err != nil {
			return nil, err
		}
	}
	if in.Password != nil {
		if err := auth.ValidatePassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		updated.SetPasswordHash(hash)
	}
	if in.IsAdmin != nil {
		updated.SetIsAdmin(*in.IsAdmin)
	}

	if err := f.users.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &updated, nil
}

// DeleteUser removes a user. Deletion is restricted while the user still
// owns places; their reviews are deleted with them.
func (f *Facade) DeleteUser(ctx context.Context, id string) error {
	user, err := f.users.Get(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return notFound("user", id)
	}

	places, err := f.places.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, place := range places {
		if place.OwnerID == id {
			return ErrUserOwnsPlaces
		}
	}

	reviews, err := f.reviews.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, review := range reviews {
		if review.UserID == id {
			if _, err := f.reviews.Delete(ctx, review.ID); err != nil {
				return err
			}
		}
	}

	if _, err := f.users.Delete(ctx, id); err != nil {
		return err
	}
	f.logger.Info("user deleted", "user_id", id)
	return nil
}

// AuthenticateUser verifies the email and password, returning the user if
// valid. Both failure modes look identical to the caller.
func (f *Facade) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := f.users.GetByAttribute(ctx, "email", email)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, auth.ErrInvalidCredentials
	}
	return user, nil
}
