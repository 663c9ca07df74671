// Package catalog provides the catalog parent command and subcommands.
package catalog

import (
	"github.com/spf13/cobra"

	"github.com/leefowlercu/assetbridge/cmd/catalog/subcommands"
)

// CatalogCmd is the parent command for all catalog-related subcommands.
var CatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the asset catalog",
	Long: "Manage the asset catalog.\n\n" +
		"The catalog is the SQLite database of assets the export command resolves " +
		"selections against. It is stored at ~/.config/assetbridge/catalog.db by default " +
		"and populated from YAML seed files.",
}

func init() {
	CatalogCmd.AddCommand(subcommands.ImportCmd)
	CatalogCmd.AddCommand(subcommands.ListCmd)
	CatalogCmd.AddCommand(subcommands.RemoveCmd)
}
