package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var flagShowSecrets bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := resolveDataDir()
		if err != nil {
			return sysError("resolve data dir", err)
		}

		eff := cfg
		eff.DataDir = dataDir
		if !flagShowSecrets {
			eff.Auth.Password = mask(eff.Auth.Password)
		}

		out, err := yaml.Marshal(&eff)
		if err != nil {
			return sysError("marshal config", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&flagShowSecrets, "show-secrets", false, "print the password in clear")
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return strings.Repeat("*", len(s))
}
