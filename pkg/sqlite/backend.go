// Package sqlite is the public entry point to the SQLite item store. Callers
// outside this module, and the todos binary itself, build stores here; the
// implementation stays in internal/sqlite.
package sqlite

import (
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/mesh-intelligence/todos/internal/sqlite"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// DBFileName is the database file kept inside Config.DataDir.
const DBFileName = sqlite.DBFileName

// Option configures a store before it is attached.
type Option = sqlite.Option

// WithLogger sets the store's logger. The default discards output.
func WithLogger(l hclog.Logger) Option { return sqlite.WithLogger(l) }

// NewBackend returns an unattached store.
func NewBackend(opts ...Option) types.ItemStore {
	return sqlite.NewBackend(opts...)
}

// Open returns a store already attached to cfg. The caller must Detach it.
func Open(cfg types.Config, opts ...Option) (types.ItemStore, error) {
	store := NewBackend(opts...)
	if err := store.Attach(cfg); err != nil {
		return nil, err
	}
	return store, nil
}

// DBPath returns the database file path for a data directory.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, DBFileName)
}
