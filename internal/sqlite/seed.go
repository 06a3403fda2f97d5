package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// defaultItems are inserted on first startup.
var defaultItems = []string{
	types.SeedTitle,
}

// seedDefaultItems inserts the default items if the todos table is empty.
// Seeding is idempotent: a table holding any row is left untouched, so the
// seed never comes back after the user deletes it while others remain.
// It reports whether any rows were inserted.
func seedDefaultItems(db *sql.DB) (bool, error) {
	tx, err := db.Begin()
	if err != nil {
		return false, fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow(sqlCountItems).Scan(&count); err != nil {
		return false, fmt.Errorf("counting items: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	for _, title := range defaultItems {
		if _, err := tx.Exec(sqlInsertItem, title); err != nil {
			return false, fmt.Errorf("seeding item %q: %w", title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing seed transaction: %w", err)
	}
	return true, nil
}
