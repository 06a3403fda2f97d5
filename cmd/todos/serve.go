package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/internal/api"
	"github.com/mesh-intelligence/todos/internal/auth"
	"github.com/mesh-intelligence/todos/internal/service"
)

var (
	flagAddr   string
	flagOrigin string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger("todos", stderr)

		store, _, err := attachStore(log.Named("store"))
		if err != nil {
			return sysError("serve", err)
		}
		defer store.Detach()

		addr := flagAddr
		if addr == "" {
			addr = cfg.ListenAddr
		}
		origin := flagOrigin
		if origin == "" {
			origin = cfg.AllowedOrigin
		}

		srv := api.NewServer(
			api.Config{Addr: addr, AllowedOrigin: origin},
			service.New(store, log.Named("service")),
			auth.NewChecker(cfg.Auth),
			log.Named("api"),
		)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.ListenAndServe(ctx); err != nil {
			return sysError("serve", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (default: listen_addr from config, :3001)")
	serveCmd.Flags().StringVar(&flagOrigin, "allowed-origin", "", "CORS origin (default: allowed_origin from config)")
}
