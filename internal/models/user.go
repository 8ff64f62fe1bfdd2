package models

import "regexp"

const maxNameLen = 50

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// User represents a registered account. The password is stored only as a
// bcrypt hash; the clear text never touches this struct.
type User struct {
	Base
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	IsAdmin      bool   `db:"is_admin"`
}

// NewUser validates the fields and returns a user with a fresh identity.
// The password hash is set separately via SetPasswordHash.
func NewUser(firstName, lastName, email string, isAdmin bool) (*User, error) {
	u := &User{Base: newBase(), IsAdmin: isAdmin}
	if err := u.SetFirstName(firstName); err != nil {
		return nil, err
	}
	if err := u.SetLastName(lastName); err != nil {
		return nil, err
	}
	if err := u.SetEmail(email); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) SetFirstName(name string) error {
	if name == "" {
		return invalid("first_name", "is required")
	}
	if len(name) > maxNameLen {
		return invalid("first_name", "must be at most 50 characters")
	}
	u.FirstName = name
	u.touch()
	return nil
}

func (u *User) SetLastName(name string) error {
	if name == "" {
		return invalid("last_name", "is required")
	}
	if len(name) > maxNameLen {
		return invalid("last_name", "must be at most 50 characters")
	}
	u.LastName = name
	u.touch()
	return nil
}

func (u *User) SetEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return invalid("email", "invalid email format")
	}
	u.Email = email
	u.touch()
	return nil
}

// SetPasswordHash stores an already-hashed password. Hashing itself lives in
// the auth package; models never see the clear text.
func (u *User) SetPasswordHash(hash string) {
	u.PasswordHash = hash
	u.touch()
}

func (u *User) SetIsAdmin(isAdmin bool) {
	u.IsAdmin = isAdmin
	u.touch()
}
