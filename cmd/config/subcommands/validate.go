package subcommands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/assetbridge/internal/config"
)

// ValidateCmd validates the current configuration.
var ValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the current configuration",
	Long: "Validate the current configuration.\n\n" +
		"Checks the configuration file for syntax errors and validates that all " +
		"settings have valid values. Returns exit code 0 if valid, 1 if invalid.",
	Example: `  # Validate the configuration
  assetbridge config validate`,
	Args:    cobra.NoArgs,
	PreRunE: validateValidate,
	RunE:    runValidate,
}

func validateValidate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := configPath()

	if !config.ConfigExists() && config.ConfigFilePath() == "" {
		fmt.Fprintf(out, "No configuration file found at %s\n", path)
		fmt.Fprintln(out, "Using default configuration values.")
		return nil
	}

	if _, err := config.LoadFromPath(path); err != nil {
		fmt.Fprintln(out, "Configuration validation failed:")
		fmt.Fprintf(out, "  %v\n", err)
		return fmt.Errorf("configuration is invalid")
	}

	fmt.Fprintf(out, "Configuration is valid: %s\n", path)
	return nil
}
