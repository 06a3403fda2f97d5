// Package integration runs the built todos binary end to end: the CLI on its
// own, and a live server driven over HTTP and through the items commands.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

var (
	// todosBin is the path to the built todos binary.
	todosBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot walks up from the working directory to the go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// TestEnv is an isolated config and data directory pair.
type TestEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	DataDir string
	APIURL  string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build todos: %v", buildErr)
	}
	if todosBin == "" {
		t.Fatal("todos binary not built")
	}

	tempDir := t.TempDir()
	return &TestEnv{
		t:       t,
		TempDir: tempDir,
		Config:  filepath.Join(tempDir, "config"),
		DataDir: filepath.Join(tempDir, "data"),
	}
}

// CmdResult holds the result of a todos command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func (e *TestEnv) command(args ...string) *exec.Cmd {
	all := []string{"--config-dir", e.Config, "--data-dir", e.DataDir}
	if e.APIURL != "" {
		all = append(all, "--api-url", e.APIURL)
	}
	cmd := exec.Command(todosBin, append(all, args...)...)
	cmd.Env = append(os.Environ(), "TODOS_CONFIG_DIR=", "TODOS_DATA_DIR=")
	return cmd
}

// RunTodos executes the todos CLI with the given arguments.
func (e *TestEnv) RunTodos(args ...string) CmdResult {
	e.t.Helper()

	cmd := e.command(args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run todos: %v", err)
		}
	}
	return CmdResult{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: exitCode}
}

// MustRunTodos executes the todos CLI and fails the test on a non-zero exit.
func (e *TestEnv) MustRunTodos(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunTodos(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("todos %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// StartServer runs "todos serve" on a free loopback port, waits until it
// answers, and points later client commands at it. The server is stopped
// with SIGINT when the test ends.
func (e *TestEnv) StartServer() *Server {
	e.t.Helper()

	addr := freeAddr(e.t)
	cmd := e.command("serve", "--addr", addr)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		e.t.Fatalf("start server: %v", err)
	}

	srv := &Server{cmd: cmd, URL: "http://" + addr, stderr: &stderr}
	e.t.Cleanup(func() { srv.Stop(e.t) })

	deadline := time.Now().Add(10 * time.Second)
	for {
		resp, err := http.Get(srv.URL + "/items")
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			e.t.Fatalf("server did not come up: %v\nstderr: %s", err, stderr.String())
		}
		time.Sleep(50 * time.Millisecond)
	}

	e.APIURL = srv.URL
	return srv
}

// Server is a running "todos serve" process.
type Server struct {
	cmd     *exec.Cmd
	URL     string
	stderr  *bytes.Buffer
	stopped bool
}

// Stop interrupts the server and waits for it to exit cleanly.
func (s *Server) Stop(t *testing.T) {
	t.Helper()
	if s.stopped {
		return
	}
	s.stopped = true
	if err := s.cmd.Process.Signal(os.Interrupt); err != nil {
		t.Errorf("signal server: %v", err)
		return
	}
	if err := s.cmd.Wait(); err != nil {
		t.Errorf("server exit: %v\nstderr: %s", err, s.stderr.String())
	}
}

// Do sends a JSON request to the server and decodes the JSON response.
func (s *Server) Do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var rd bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&rd).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, s.URL+path, &rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s %s: %v", method, path, err)
	}
	return resp.StatusCode, out
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// Item mirrors the JSON shape of a stored item.
type Item struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	defer ln.Close()
	return fmt.Sprintf("127.0.0.1:%d", ln.Addr().(*net.TCPAddr).Port)
}
