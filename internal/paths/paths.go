// Package paths resolves where todos keeps its configuration and its
// SQLite file.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName is the directory name used under platform config roots.
const AppName = "todos"

// DefaultDataDirName is the CWD-relative data directory used when nothing
// else is configured.
const DefaultDataDirName = ".todos-db"

// Environment variable overrides.
const (
	EnvConfigDir = "TODOS_CONFIG_DIR"
	EnvDataDir   = "TODOS_DATA_DIR"
)

// platform lookups, replaced in tests.
var (
	userHomeDir   = os.UserHomeDir
	userConfigDir = os.UserConfigDir
	getwd         = os.Getwd
)

// DefaultConfigDir returns the per-user configuration directory:
// $XDG_CONFIG_HOME/todos or ~/.config/todos on Linux, and
// os.UserConfigDir()/todos elsewhere.
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, AppName), nil
		}
		home, err := userHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", AppName), nil
	}
	dir, err := userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// ResolveConfigDir applies: flag > TODOS_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if dir, ok := firstSet(flag, os.Getenv(EnvConfigDir)); ok {
		return filepath.Abs(dir)
	}
	return DefaultConfigDir()
}

// ResolveDataDir applies: flag > data_dir from config.yaml > TODOS_DATA_DIR >
// $(CWD)/.todos-db.
func ResolveDataDir(flag, configured string) (string, error) {
	if dir, ok := firstSet(flag, configured, os.Getenv(EnvDataDir)); ok {
		return filepath.Abs(dir)
	}
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

func firstSet(values ...string) (string, bool) {
	for _, v := range values {
		if v != "" {
			return v, true
		}
	}
	return "", false
}
