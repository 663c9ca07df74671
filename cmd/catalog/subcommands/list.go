package subcommands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/assetbridge/internal/asset"
	"github.com/leefowlercu/assetbridge/internal/tui/styles"
)

var (
	listFolder string
)

// ListCmd lists catalog assets.
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog assets",
	Long: "List catalog assets.\n\n" +
		"Lists every asset in the catalog, or with --folder only those under the " +
		"given folder and its subfolders.",
	Example: `  # List everything
  assetbridge catalog list

  # List one folder
  assetbridge catalog list --folder /Game/Props`,
	Args:    cobra.NoArgs,
	PreRunE: validateList,
	RunE:    runList,
}

func init() {
	ListCmd.Flags().StringVar(&listFolder, "folder", "", "Only list assets under this folder")
}

func validateList(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd.Context())
	out := cmd.OutOrStdout()

	cat, err := openCatalog(ctx)
	if err != nil {
		return err
	}
	defer cat.Close()

	entries, err := cat.ListAssets(ctx, asset.FolderRef(listFolder))
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No assets in catalog.")
		fmt.Fprintln(out, "\nUse 'assetbridge catalog import <file>' to add assets.")
		return nil
	}

	fmt.Fprintf(out, "Catalog assets (%d):\n", len(entries))

	t := styles.NewTable([]string{"IDENTITY", "KIND", "CLASS", "SOURCE"})
	for _, e := range entries {
		kind := asset.KindFromClass(e.ClassName).String()
		if kind == asset.KindUnknown.String() {
			kind = styles.WarningText.Render(kind)
		}
		source := e.SourcePath
		if source == "" {
			source = styles.MutedText.Render("-")
		}
		t.Row(e.Identity, kind, e.ClassName, source)
	}
	fmt.Fprintln(out, t.String())

	return nil
}
