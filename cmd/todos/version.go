package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/pkg/todos"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the todos version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "todos", todos.Version)
	},
}
