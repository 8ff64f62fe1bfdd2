// Package sqlite provides SQLite-backed implementations of
// storage.Repository using goqu-built SQL over the pure Go driver.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // goqu SQL dialect
	_ "modernc.org/sqlite"                             // pure Go SQLite driver (no CGO)

	"hbnb/internal/models"
	"hbnb/internal/storage"
)

// Store owns the database connection and hands out per-entity repositories.
type Store struct {
	db *sql.DB
	gq *goqu.Database
}

// Open creates the parent directory if needed, opens the database, enables
// foreign keys and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db, gq: goqu.New("sqlite3", db)}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Users returns the user repository.
func (s *Store) Users() storage.Repository[*models.User] {
	return newTable(s.gq, "users",
		[]any{"id", "created_at", "updated_at", "first_name", "last_name", "email", "password_hash", "is_admin"},
		func() *models.User { return &models.User{} },
	)
}

// Amenities returns the amenity repository.
func (s *Store) Amenities() storage.Repository[*models.Amenity] {
	return newTable(s.gq, "amenities",
		[]any{"id", "created_at", "updated_at", "name"},
		func() *models.Amenity { return &models.Amenity{} },
	)
}

// Reviews returns the review repository.
func (s *Store) Reviews() storage.Repository[*models.Review] {
	return newTable(s.gq, "reviews",
		[]any{"id", "created_at", "updated_at", "text", "rating", "user_id", "place_id"},
		func() *models.Review { return &models.Review{} },
	)
}

// Places returns the place repository, which also maintains the
// place_amenity join table.
func (s *Store) Places() storage.Repository[*models.Place] {
	return newPlaces(s.gq)
}

// isDuplicateID reports whether err is the primary-key constraint firing for
// the given table.
func isDuplicateID(err error, table string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: "+table+".id")
}
