package types

import (
	"context"
	"errors"
)

// ItemStore defines durable storage for todo items.
// Callers attach to a backend, run operations, and detach when done.
type ItemStore interface {
	// Attach opens the backend described by config, creates the schema if it
	// is absent, and seeds the default item when the table is empty.
	// Safe to call on every process start against the same data directory.
	// Returns ErrAlreadyAttached if called while already attached; other
	// failures wrap ErrStoreInit.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations return ErrStoreDetached.
	Detach() error

	// List returns every item in insertion order.
	List(ctx context.Context) ([]Item, error)

	// Insert creates an item with completed=false and returns its id.
	// Returns ErrDuplicateTitle if an item with the same title exists.
	Insert(ctx context.Context, title string) (int64, error)

	// Update overwrites the title of the item with the given id. When
	// completed is non-nil it is overwritten as well, otherwise the stored
	// value is kept. Returns ErrNotFound if no item matches.
	Update(ctx context.Context, id int64, title string, completed *bool) error

	// Delete removes the item with the given id. Absence is not an error.
	Delete(ctx context.Context, id int64) error
}

// Store lifecycle errors.
var (
	ErrStoreInit       = errors.New("store initialization failed")
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)
