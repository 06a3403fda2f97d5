package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todos/internal/client"
	"github.com/mesh-intelligence/todos/pkg/sqlite"
	"github.com/mesh-intelligence/todos/pkg/types"
)

func TestLoadConfig_CreatesDefaultFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")

	v, err := loadConfig(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, configFileExt))
	require.NoError(t, err)
	assert.Equal(t, defaultConfigYAML, string(data))

	s := settingsFrom(v)
	assert.Equal(t, types.BackendSQLite, s.Backend)
	assert.Empty(t, s.DataDir)
	assert.Equal(t, ":3001", s.ListenAddr)
	assert.Equal(t, "http://localhost:3000", s.AllowedOrigin)
	assert.Equal(t, client.DefaultBaseURL, s.APIURL)
	assert.Equal(t, types.DefaultCredentials(), s.Auth)
	assert.Equal(t, "info", s.LogLevel)
	assert.False(t, s.LogJSON)
}

func TestLoadConfig_ReadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	body := `backend: sqlite
data_dir: /srv/todos
listen_addr: ":8080"
auth:
  username: alice
log_json: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte(body), 0o644))

	v, err := loadConfig(dir)
	require.NoError(t, err)
	s := settingsFrom(v)

	assert.Equal(t, "/srv/todos", s.DataDir)
	assert.Equal(t, ":8080", s.ListenAddr)
	assert.Equal(t, "alice", s.Auth.Username)
	assert.Equal(t, types.DefaultPassword, s.Auth.Password, "unset keys keep defaults")
	assert.True(t, s.LogJSON)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte("backend: [unclosed"), 0o644))

	_, err := loadConfig(dir)
	assert.Error(t, err)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, exitSuccess},
		{"user error", userError("bad", nil), exitUserError},
		{"system error", sysError("boom", errors.New("disk")), exitSysError},
		{"plain cobra error", errors.New("unknown flag"), exitUserError},
		{"4xx from api", apiError("add", &client.APIError{StatusCode: 400}), exitUserError},
		{"5xx from api", apiError("add", &client.APIError{StatusCode: 500}), exitSysError},
		{"unreachable api", apiError("add", errors.New("connection refused")), exitSysError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestCmdError_Message(t *testing.T) {
	assert.Equal(t, "serve: disk", sysError("serve", errors.New("disk")).Error())
	assert.Equal(t, "item 3 not found", userError("item 3 not found", nil).Error())
	assert.ErrorIs(t, userError("x", types.ErrInvalidID), types.ErrInvalidID)
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = parseID("abc")
	assert.ErrorIs(t, err, types.ErrInvalidID)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestPrintItems(t *testing.T) {
	var buf bytes.Buffer
	printItems(&buf, nil)
	assert.Equal(t, "No todos yet.\n", buf.String())

	buf.Reset()
	printItems(&buf, []types.Item{
		{ID: 1, Title: "Learn testing"},
		{ID: 2, Title: "Ship", Completed: true},
	})
	out := buf.String()
	assert.Contains(t, out, "[ ]    1  Learn testing")
	assert.Contains(t, out, "[x]    2  Ship")
	assert.Contains(t, out, "2 total, 1 done, 1 pending")
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", mask(""))
	assert.Equal(t, "********", mask("password"))
}

func TestAttachStore_UsesResolvedDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	origFlag, origCfg := flagDataDir, cfg
	t.Cleanup(func() { flagDataDir, cfg = origFlag, origCfg })
	flagDataDir = dir
	cfg = settings{Backend: types.BackendSQLite}

	store, dataDir, err := attachStore(hclog.NewNullLogger())
	require.NoError(t, err)
	defer store.Detach()

	assert.Equal(t, dir, dataDir)
	items, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
	_, err = os.Stat(sqlite.DBPath(dir))
	assert.NoError(t, err)
}

func TestAttachStore_UnknownBackend(t *testing.T) {
	origFlag, origCfg := flagDataDir, cfg
	t.Cleanup(func() { flagDataDir, cfg = origFlag, origCfg })
	flagDataDir = t.TempDir()
	cfg = settings{Backend: "postgres"}

	_, _, err := attachStore(hclog.NewNullLogger())
	assert.ErrorIs(t, err, types.ErrStoreInit)
}
