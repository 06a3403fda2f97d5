package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/internal/paths"
	"github.com/mesh-intelligence/todos/pkg/todos"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagLogLevel  string
)

// cfg holds settings loaded from config.yaml by PersistentPreRunE.
var cfg settings

var rootCmd = &cobra.Command{
	Use:           "todos",
	Short:         "A small todo list server and terminal client",
	Version:       todos.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return sysError("resolve config dir", err)
		}

		v, err := loadConfig(configDir)
		if err != nil {
			return sysError("load config", err)
		}

		cfg = settingsFrom(v)
		cfg.ConfigDir = configDir
		if flagLogLevel != "" {
			cfg.LogLevel = flagLogLevel
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir/todos)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.todos-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(itemsCmd)
}

// resolveConfigDir applies --config-dir > TODOS_CONFIG_DIR > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir applies --data-dir > config.yaml data_dir > TODOS_DATA_DIR >
// $(CWD)/.todos-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, cfg.DataDir)
}
