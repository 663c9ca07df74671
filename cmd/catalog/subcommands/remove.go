package subcommands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RemoveCmd deletes an asset from the catalog.
var RemoveCmd = &cobra.Command{
	Use:   "remove IDENTITY",
	Short: "Remove an asset from the catalog",
	Long: "Remove an asset from the catalog.\n\n" +
		"Deletes the asset and, for materials, its texture parameter bindings.",
	Example: `  assetbridge catalog remove /Game/Props/Chair.Chair`,
	Args:    cobra.ExactArgs(1),
	PreRunE: validateRemove,
	RunE:    runRemove,
}

func validateRemove(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd.Context())

	cat, err := openCatalog(ctx)
	if err != nil {
		return err
	}
	defer cat.Close()

	if err := cat.RemoveAsset(ctx, args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
	return nil
}
