package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/pkg/sqlite"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration directory and initialize the item store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// PersistentPreRunE already created config.yaml.
		store, dataDir, err := attachStore(hclog.NewNullLogger())
		if err != nil {
			return sysError("init", err)
		}
		if err := store.Detach(); err != nil {
			return sysError("init: detach store", err)
		}

		dbPath := sqlite.DBPath(dataDir)
		size := "unknown size"
		if fi, err := os.Stat(dbPath); err == nil {
			size = humanize.Bytes(uint64(fi.Size()))
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "todos initialized successfully")
		fmt.Fprintln(out, "  config:", cfg.ConfigDir)
		fmt.Fprintf(out, "  data:   %s (%s)\n", dbPath, size)
		return nil
	},
}
