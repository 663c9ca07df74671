package subcommands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/assetbridge/internal/catalog"
)

// ImportCmd loads a YAML seed file into the catalog.
var ImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import assets from a YAML seed file",
	Long: "Import assets from a YAML seed file.\n\n" +
		"Each seed entry names an asset class, its folder and display name (or a full " +
		"identity), the source file the exporter reads, and for materials the texture " +
		"parameters. Relative sources are resolved against the seed file's directory. " +
		"Importing the same file twice leaves the catalog unchanged.",
	Example: `  # Import a seed file
  assetbridge catalog import ./assets.yaml`,
	Args:    cobra.ExactArgs(1),
	PreRunE: validateImport,
	RunE:    runImport,
}

func validateImport(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd.Context())

	seed, err := catalog.LoadSeed(args[0])
	if err != nil {
		return err
	}

	cat, err := openCatalog(ctx)
	if err != nil {
		return err
	}
	defer cat.Close()

	res, err := cat.ImportSeed(ctx, seed)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d assets and %d texture parameters from %s\n",
		res.Assets, res.Parameters, args[0])
	return nil
}
