package subcommands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/assetbridge/internal/config"
)

var (
	initForce bool
)

// InitCmd writes a configuration file populated with the default values.
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: "Write a default configuration file.\n\n" +
		"Creates config.yaml in the configuration directory with every setting at " +
		"its default value, ready to be edited. An existing file is left untouched " +
		"unless --force is given.",
	Example: `  # Create ~/.config/assetbridge/config.yaml
  assetbridge config init`,
	Args:    cobra.NoArgs,
	PreRunE: validateInit,
	RunE:    runInit,
}

func init() {
	InitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing configuration file")
}

func validateInit(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := config.DefaultConfigPath()

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("configuration file already exists at %s; use --force to overwrite", path)
	}

	cfg := config.NewDefaultConfig()
	if err := config.WriteDefault(&cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "Configuration written to %s\n", path)
	return nil
}
