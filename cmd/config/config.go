// Package config provides the config parent command and subcommands.
package config

import (
	"github.com/spf13/cobra"

	"github.com/leefowlercu/assetbridge/cmd/config/subcommands"
)

// ConfigCmd is the parent command for all config-related subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage assetbridge configuration",
	Long: "Manage assetbridge configuration.\n\n" +
		"The config command allows you to view, create, validate and reset the " +
		"assetbridge configuration. Configuration is stored in a YAML file located at " +
		"~/.config/assetbridge/config.yaml by default.",
}

func init() {
	ConfigCmd.AddCommand(subcommands.ShowCmd)
	ConfigCmd.AddCommand(subcommands.InitCmd)
	ConfigCmd.AddCommand(subcommands.ValidateCmd)
	ConfigCmd.AddCommand(subcommands.ResetCmd)
}
