package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagUsername string
	flagPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print the session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, pass := flagUsername, flagPassword
		if !cmd.Flags().Changed("username") {
			user = cfg.Auth.Username
		}
		if !cmd.Flags().Changed("password") {
			pass = cfg.Auth.Password
		}

		token, err := newAPIClient(flagAPIURL).Login(cmd.Context(), user, pass)
		if err != nil {
			return apiError("login", err)
		}

		if flagJSON {
			return printJSON(cmd.OutOrStdout(), map[string]string{"token": token})
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&flagUsername, "username", "", "username (default: auth.username from config)")
	loginCmd.Flags().StringVar(&flagPassword, "password", "", "password (default: auth.password from config)")
}
