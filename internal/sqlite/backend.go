// Package sqlite implements the SQLite storage backend for todos.
// A Backend owns one database file inside the configured data directory and
// serializes all access through a single connection.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-hclog"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// DBFileName is the name of the database file inside DataDir.
const DBFileName = "todos.sqlite"

// Backend implements types.ItemStore using SQLite.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	log      hclog.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l hclog.Logger) Option {
	return func(b *Backend) {
		b.log = l
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{log: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, opens the database file, applies the
// schema, and seeds the default item when the table is empty.
// Returns ErrAlreadyAttached if already attached; every other failure wraps
// ErrStoreInit.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("%w: %w", types.ErrStoreInit, err)
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("%w: create data dir: %w", types.ErrStoreInit, err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("%w: open database: %w", types.ErrStoreInit, err)
	}
	// One connection: SQLite serializes writers anyway, and a single handle
	// keeps concurrent requests from tripping over SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("%w: connect: %w", types.ErrStoreInit, err)
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("%w: apply schema: %w", types.ErrStoreInit, err)
		}
	}

	seeded, err := seedDefaultItems(db)
	if err != nil {
		db.Close()
		return fmt.Errorf("%w: %w", types.ErrStoreInit, err)
	}

	b.db = db
	b.config = config
	b.attached = true

	b.log.Info("database attached", "path", dbPath, "seeded", seeded)
	return nil
}

// Detach releases all resources held by the backend.
// After Detach, all operations return ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.log.Debug("database detached")
	return nil
}

// DataDir returns the data directory of the attached store, or "" when
// detached.
func (b *Backend) DataDir() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return ""
	}
	return b.config.DataDir
}

// handle returns the open database or ErrStoreDetached.
// The caller must hold b.mu (read or write lock).
func (b *Backend) handle() (*sql.DB, error) {
	if !b.attached || b.db == nil {
		return nil, types.ErrStoreDetached
	}
	return b.db, nil
}
