// Package memory provides an in-memory implementation of storage.Repository,
// used for development and tests.
package memory

import (
	"context"
	"reflect"
	"sync"

	"hbnb/internal/models"
	"hbnb/internal/storage"
)

// Ensure Repository implements the storage contract.
var _ storage.Repository[*models.User] = (*Repository[*models.User])(nil)

// Repository stores entities in a map keyed by ID, remembering insertion
// order so GetAll is deterministic. A RWMutex makes it safe for the ordinary
// concurrent request handling of a single process.
type Repository[T models.Entity] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

// New returns an empty repository.
func New[T models.Entity]() *Repository[T] {
	return &Repository[T]{items: make(map[string]T)}
}

// Add stores the entity, failing with ErrDuplicateID if its ID is taken.
func (r *Repository[T]) Add(_ context.Context, entity T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := entity.EntityID()
	if _, ok := r.items[id]; ok {
		return storage.ErrDuplicateID
	}
	r.items[id] = entity
	r.order = append(r.order, id)
	return nil
}

// Get looks up an entity by ID, returning the zero value on a miss.
func (r *Repository[T]) Get(_ context.Context, id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entity, ok := r.items[id]
	if !ok {
		var zero T
		return zero, nil
	}
	return entity, nil
}

// GetAll returns a snapshot of all entities in insertion order.
func (r *Repository[T]) GetAll(_ context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]T, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, r.items[id])
	}
	return all, nil
}

// Update replaces the stored record, failing with ErrNotFound if absent.
func (r *Repository[T]) Update(_ context.Context, entity T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := entity.EntityID()
	if _, ok := r.items[id]; !ok {
		return storage.ErrNotFound
	}
	r.items[id] = entity
	return nil
}

// Delete removes the entity, reporting whether anything was removed.
func (r *Repository[T]) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// GetByAttribute linearly scans for the first entity whose field tagged with
// the given db column name equals value. The comparison requires the exact
// same dynamic type, matching what a SQL equality would accept.
func (r *Repository[T]) GetByAttribute(_ context.Context, column string, value any) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		entity := r.items[id]
		field, ok := fieldByColumn(reflect.ValueOf(entity).Elem(), column)
		if !ok {
			break // no entity of this type has the column
		}
		if field.Interface() == value {
			return entity, nil
		}
	}
	var zero T
	return zero, nil
}

// fieldByColumn resolves a struct field by its db tag, descending into
// embedded structs the same way the SQL layer flattens them.
func fieldByColumn(v reflect.Value, column string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			if nested, ok := fieldByColumn(v.Field(i), column); ok {
				return nested, true
			}
			continue
		}
		if f.Tag.Get("db") == column {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}
