package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/mesh-intelligence/todos/internal/client"
	"github.com/mesh-intelligence/todos/pkg/sqlite"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// cmdError carries the exit code a failed command should produce.
type cmdError struct {
	code int
	msg  string
	err  error
}

func (e *cmdError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *cmdError) Unwrap() error { return e.err }

func userError(msg string, err error) error {
	return &cmdError{code: exitUserError, msg: msg, err: err}
}

func sysError(msg string, err error) error {
	return &cmdError{code: exitSysError, msg: msg, err: err}
}

// apiError classifies a client error: 4xx responses are the caller's fault,
// everything else (5xx, unreachable server) is a system error.
func apiError(msg string, err error) error {
	var ae *client.APIError
	if errors.As(err, &ae) && ae.StatusCode >= 400 && ae.StatusCode < 500 {
		return userError(msg, err)
	}
	return sysError(msg, err)
}

// newLogger builds the process logger from the loaded settings.
func newLogger(name string, out io.Writer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(cfg.LogLevel),
		JSONFormat: cfg.LogJSON,
		Output:     out,
	})
}

// attachStore resolves the data directory and opens a SQLite store there.
// It returns the store and the directory it uses. The caller must Detach it.
func attachStore(log hclog.Logger) (types.ItemStore, string, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, "", fmt.Errorf("resolve data dir: %w", err)
	}

	store, err := sqlite.Open(types.Config{Backend: cfg.Backend, DataDir: dataDir}, sqlite.WithLogger(log))
	if err != nil {
		return nil, "", fmt.Errorf("attach store: %w", err)
	}
	return store, dataDir, nil
}

// newAPIClient returns a client for --api-url, falling back to api_url.
func newAPIClient(flagURL string) *client.Client {
	url := flagURL
	if url == "" {
		url = cfg.APIURL
	}
	return client.New(url)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// stderr is where command diagnostics and server logs go.
var stderr io.Writer = os.Stderr
