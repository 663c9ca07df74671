// Package export implements the export command.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/assetbridge/internal/catalog"
	"github.com/leefowlercu/assetbridge/internal/cmdutil"
	"github.com/leefowlercu/assetbridge/internal/config"
	"github.com/leefowlercu/assetbridge/internal/exporter"
	"github.com/leefowlercu/assetbridge/internal/host"
	"github.com/leefowlercu/assetbridge/internal/host/local"
	"github.com/leefowlercu/assetbridge/internal/interchange"
	"github.com/leefowlercu/assetbridge/internal/selection"
	"github.com/leefowlercu/assetbridge/internal/strategies"
	"github.com/leefowlercu/assetbridge/internal/version"
)

// Flag variables for the export command.
var (
	exportOutput  string
	exportAssets  []string
	exportFolders []string
	exportFormat  string
)

// ExportCmd runs one export of the current selection.
var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the selected assets to interchange files",
	Long: "Export the selected assets to interchange files.\n\n" +
		"The selection is read from the selection file unless --asset or --folder " +
		"flags are given, in which case the flags replace it. Every selected asset " +
		"is exported by the strategy for its kind, and an export_report.json manifest " +
		"describing the produced files is written to the output directory.\n\n" +
		"Assets that fail to export are reported but do not stop the run. The command " +
		"exits non-zero only when the run itself cannot complete.",
	Example: `  # Export the selection file into the configured output root
  assetbridge export

  # Export two assets and a folder into a specific directory
  assetbridge export --output ./out --asset /Game/Props/SM_Chair.SM_Chair \
    --asset /Game/Props/T_Wood.T_Wood --folder /Game/Characters

  # Print the summary as JSON
  assetbridge export --format json`,
	Args:    cobra.NoArgs,
	PreRunE: validateExport,
	RunE:    runExport,
}

func init() {
	ExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output directory (default: export.output_root)")
	ExportCmd.Flags().StringArrayVar(&exportAssets, "asset", nil, "Asset identity to export (repeatable)")
	ExportCmd.Flags().StringArrayVar(&exportFolders, "folder", nil, "Content folder to export recursively (repeatable)")
	ExportCmd.Flags().StringVar(&exportFormat, "format", "text", "Output format: text or json")
}

func validateExport(cmd *cobra.Command, args []string) error {
	switch strings.ToLower(exportFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid format %q; must be text or json", exportFormat)
	}

	// All validation passed - errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := slog.Default().With("command", "export")

	cfg, err := config.Current()
	if err != nil {
		return err
	}
	paths := cfg.ExpandPaths()

	outputRoot := paths.Export.OutputRoot
	if exportOutput != "" {
		outputRoot = exportOutput
	}
	outputRoot, err = cmdutil.ResolvePath(outputRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve output directory; %w", err)
	}

	cat, err := catalog.Open(ctx, paths.Catalog.Path,
		catalog.WithContentRoot(cfg.Catalog.ContentRoot),
		catalog.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to open catalog; %w", err)
	}
	defer cat.Close()

	var src host.SelectionSource
	if len(exportAssets) > 0 || len(exportFolders) > 0 {
		src = selection.NewListSource(cat, selection.File{Assets: exportAssets, Folders: exportFolders}, selection.WithLogger(logger))
	} else {
		src = selection.NewFileSource(paths.Selection.File, cat, selection.WithLogger(logger))
	}

	h := local.New(cat, src, interchange.NewWriter(interchange.WithLogger(logger)))

	exp := exporter.New(h,
		exporter.WithLogger(logger),
		exporter.WithStrategyOptions(
			strategies.WithMeshExtension(cfg.Export.MeshExtension),
			strategies.WithDirectTextureSuffix(cfg.Export.DirectTextureSuffix),
			strategies.WithShaderModel(cfg.Export.ShaderModel),
		),
		exporter.WithAnimationSkeleton(cfg.Export.AnimationSkeleton),
		exporter.WithMetricsTextfile(paths.Metrics.Textfile),
		exporter.WithGenerator(version.Generator()),
	)

	res, runErr := exp.Run(ctx, outputRoot)

	out := cmd.OutOrStdout()
	if strings.EqualFold(exportFormat, "json") {
		if err := writeJSON(out, buildExportResult(res, runErr)); err != nil {
			return err
		}
	} else {
		writeSummary(out, res, runErr)
	}

	return runErr
}
