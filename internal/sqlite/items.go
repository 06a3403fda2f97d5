package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// List returns all items ordered by id, which is insertion order.
func (b *Backend) List(ctx context.Context) ([]types.Item, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, sqlListItems)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := []types.Item{}
	for rows.Next() {
		var it types.Item
		if err := rows.Scan(&it.ID, &it.Title, &it.Completed); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// Insert adds a new item with completed=false and returns its id.
// Returns ErrTitleRequired for an empty title and ErrDuplicateTitle when the
// title is already taken.
func (b *Backend) Insert(ctx context.Context, title string) (int64, error) {
	if err := types.ValidateTitle(title); err != nil {
		return 0, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.handle()
	if err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx, sqlInsertItem, title)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %w", types.ErrDuplicateTitle, err)
		}
		return 0, fmt.Errorf("insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted id: %w", err)
	}
	return id, nil
}

// Update overwrites the title, and completed when non-nil, of the item with
// the given id. Returns ErrNotFound when no row matches.
func (b *Backend) Update(ctx context.Context, id int64, title string, completed *bool) error {
	if err := types.ValidateTitle(title); err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.handle()
	if err != nil {
		return err
	}

	var completedArg any
	if completed != nil {
		completedArg = *completed
	}

	res, err := db.ExecContext(ctx, sqlUpdateItem, title, completedArg, id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %w", types.ErrDuplicateTitle, err)
		}
		return fmt.Errorf("update item %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update item %d: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Delete removes the item with the given id. Deleting an absent id succeeds.
func (b *Backend) Delete(ctx context.Context, id int64) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.handle()
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, sqlDeleteItem, id); err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var se *msqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return true
		}
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
