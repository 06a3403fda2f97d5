package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/internal/ui"
)

var flagAPIURL string

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive terminal client",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := ui.Options{Username: cfg.Auth.Username, Password: cfg.Auth.Password}
		if err := ui.Run(newAPIClient(flagAPIURL), opts); err != nil {
			return sysError("ui", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "API base URL for client commands (default: api_url from config)")
}
