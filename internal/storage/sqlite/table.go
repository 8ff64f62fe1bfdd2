package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"hbnb/internal/models"
	"hbnb/internal/storage"
)

// Ensure table implements the storage contract.
var _ storage.Repository[*models.User] = (*table[*models.User])(nil)

// table implements storage.Repository for one single-table entity. Column
// names come from the entity's db tags, so goqu maps rows both ways; the
// explicit column list keeps selects aligned with the struct. Every mutation
// runs inside a transaction that rolls back on failure.
type table[T models.Entity] struct {
	db      *goqu.Database
	name    string
	columns []any
	zero    func() T
}

func newTable[T models.Entity](db *goqu.Database, name string, columns []any, zero func() T) *table[T] {
	return &table[T]{db: db, name: name, columns: columns, zero: zero}
}

// Add inserts the entity, mapping the primary-key constraint to
// ErrDuplicateID so the facade sees the same contract as the in-memory
// backend.
func (t *table[T]) Add(ctx context.Context, entity T) error {
	err := t.db.WithTx(func(tx *goqu.TxDatabase) error {
		_, err := tx.Insert(t.name).Rows(entity).Prepared(true).Executor().ExecContext(ctx)
		return err
	})
	if err != nil {
		if isDuplicateID(err, t.name) {
			return storage.ErrDuplicateID
		}
		return fmt.Errorf("failed to insert into %s: %w", t.name, err)
	}
	return nil
}

// Get looks up an entity by ID, returning nil on a miss.
func (t *table[T]) Get(ctx context.Context, id string) (T, error) {
	return t.GetByAttribute(ctx, "id", id)
}

// GetAll returns every row; order is storage-defined.
func (t *table[T]) GetAll(ctx context.Context) ([]T, error) {
	var all []T
	err := t.db.From(t.name).Select(t.columns...).ScanStructsContext(ctx, &all)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", t.name, err)
	}
	return all, nil
}

// Update replaces the row keyed by the entity's ID, failing with ErrNotFound
// when no row matches.
func (t *table[T]) Update(ctx context.Context, entity T) error {
	err := t.db.WithTx(func(tx *goqu.TxDatabase) error {
		res, err := tx.Update(t.name).Set(entity).
			Where(goqu.Ex{"id": entity.EntityID()}).
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
		return nil
	})
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to update %s: %w", t.name, err)
	}
	return err
}

// Delete removes the row, reporting whether anything was removed.
func (t *table[T]) Delete(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := t.db.WithTx(func(tx *goqu.TxDatabase) error {
		res, err := tx.Delete(t.name).Where(goqu.Ex{"id": id}).
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
		return false, fmt.Errorf("failed to delete from %s: %w", t.name, err)
	}
	return removed, nil
}

// GetByAttribute returns the first row whose column equals value, nil on a
// miss.
func (t *table[T]) GetByAttribute(ctx context.Context, column string, value any) (T, error) {
	entity := t.zero()
	found, err := t.db.From(t.name).Select(t.columns...).
		Where(goqu.Ex{column: value}).Limit(1).
		ScanStructContext(ctx, entity)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to query %s by %s: %w", t.name, column, err)
	}
	if !found {
		var zero T
		return zero, nil
	}
	return entity, nil
}
