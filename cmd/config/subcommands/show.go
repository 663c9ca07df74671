package subcommands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leefowlercu/assetbridge/internal/config"
)

var (
	showRaw bool
)

// ShowCmd displays the current configuration.
var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current configuration",
	Long: "Display the current configuration.\n\n" +
		"Shows the effective assetbridge configuration with defaults and ASSETBRIDGE_* " +
		"environment overrides applied. Use --raw to print the config file as written.",
	Example: `  # Show effective configuration
  assetbridge config show

  # Show the config file only
  assetbridge config show --raw`,
	Args:    cobra.NoArgs,
	PreRunE: validateShow,
	RunE:    runShow,
}

func init() {
	ShowCmd.Flags().BoolVar(&showRaw, "raw", false, "Show only the config file contents (no defaults)")
}

func validateShow(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	if showRaw {
		return showRawConfig(cmd)
	}
	return showEffectiveConfig(cmd)
}

func configPath() string {
	if path := config.ConfigFilePath(); path != "" {
		return path
	}
	return config.DefaultConfigPath()
}

func showRawConfig(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	path := configPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(out, "# No configuration file found")
			fmt.Fprintf(out, "# Default location: %s\n", path)
			return nil
		}
		return fmt.Errorf("failed to read config file; %w", err)
	}

	fmt.Fprintf(out, "# Configuration file: %s\n", path)
	fmt.Fprintln(out, string(data))
	return nil
}

func showEffectiveConfig(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Current()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format configuration; %w", err)
	}

	fmt.Fprintln(out, "# Effective configuration (with defaults)")
	fmt.Fprintf(out, "# Config file: %s\n", configPath())
	fmt.Fprintln(out, string(data))
	return nil
}
