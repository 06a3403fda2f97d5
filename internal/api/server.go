// Package api exposes the todo service and the login check over HTTP.
// Every response is a JSON envelope carrying a success flag; failures are
// converted to envelopes here and never escape as panics or plain-text
// bodies.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// Defaults for Config fields left empty.
const (
	DefaultAddr          = ":3001"
	DefaultAllowedOrigin = "http://localhost:3000"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
	maxBodyBytes      = 1 << 20
)

// ItemService is the todo surface the handlers call.
type ItemService interface {
	List(ctx context.Context) ([]types.Item, error)
	Create(ctx context.Context, title string) (int64, error)
	Update(ctx context.Context, id int64, title string, completed *bool) error
	Delete(ctx context.Context, id int64) error
}

// Authenticator checks a login attempt and returns the session token.
type Authenticator interface {
	Login(username, password string) (string, error)
}

// Config holds the listen address and the single origin allowed by CORS.
type Config struct {
	Addr          string
	AllowedOrigin string
}

// Server binds an ItemService and an Authenticator to the HTTP routes.
type Server struct {
	cfg     Config
	items   ItemService
	auth    Authenticator
	log     hclog.Logger
	handler http.Handler
}

// NewServer builds the route table and middleware chain. A nil logger
// discards output.
func NewServer(cfg Config, items ItemService, auth Authenticator, log hclog.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = DefaultAllowedOrigin
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}

	s := &Server{
		cfg:   cfg,
		items: items,
		auth:  auth,
		log:   log,
	}
	s.handler = s.logRequests(corsPolicy(cfg.AllowedOrigin).Handler(s.recoverPanics(s.routes())))
	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /items", s.handleListItems)
	mux.HandleFunc("POST /items", s.handleCreateItem)
	mux.HandleFunc("PUT /items/{id}", s.handleUpdateItem)
	mux.HandleFunc("DELETE /items/{id}", s.handleDeleteItem)
	mux.HandleFunc("/", s.handleNotFound)
	return mux
}

// Handler returns the root handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

// ListenAndServe listens on the configured address and serves until ctx is
// canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled. In-flight requests
// get shutdownTimeout to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          s.log.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}),
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("server listening", "addr", ln.Addr().String(), "origin", s.cfg.AllowedOrigin)
	err := srv.Serve(ln)
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-stopped; err != nil {
		return err
	}
	s.log.Info("server stopped")
	return nil
}
