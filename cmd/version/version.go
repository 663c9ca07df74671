// Package version implements the version command.
package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/assetbridge/internal/version"
)

// VersionCmd displays version and build information.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and build information",
	Long: "Display version and build information.\n\n" +
		"Shows the semantic version, git commit hash, and build date of the " +
		"assetbridge binary. The same version is stamped into every export manifest.",
	Example: `  # Display version information
  assetbridge version`,
	Args:    cobra.NoArgs,
	PreRunE: validateVersion,
	RunE:    runVersion,
}

func validateVersion(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runVersion(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
	return nil
}
