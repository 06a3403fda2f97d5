package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todos/pkg/types"
)

func TestNewBackend_Unattached(t *testing.T) {
	store := NewBackend()
	_, err := store.List(context.Background())
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	store, err := Open(types.Config{Backend: types.BackendSQLite, DataDir: dir}, WithLogger(hclog.NewNullLogger()))
	require.NoError(t, err)
	defer store.Detach()

	items, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = os.Stat(DBPath(dir))
	assert.NoError(t, err)
}

func TestOpen_InvalidConfig(t *testing.T) {
	store, err := Open(types.Config{Backend: "postgres", DataDir: t.TempDir()})
	assert.ErrorIs(t, err, types.ErrStoreInit)
	assert.Nil(t, store)
}

func TestDBPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/srv/todos", "todos.sqlite"), DBPath("/srv/todos"))
}
