// Package cmd wires the assetbridge command tree.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	catalogcmd "github.com/leefowlercu/assetbridge/cmd/catalog"
	configcmd "github.com/leefowlercu/assetbridge/cmd/config"
	"github.com/leefowlercu/assetbridge/cmd/export"
	"github.com/leefowlercu/assetbridge/cmd/verify"
	versioncmd "github.com/leefowlercu/assetbridge/cmd/version"
	"github.com/leefowlercu/assetbridge/internal/config"
	"github.com/leefowlercu/assetbridge/internal/logging"
)

// logManager is the global logging manager, created in init() and upgraded after config loads
var logManager *logging.Manager

var rootCmd = &cobra.Command{
	Use:   "assetbridge",
	Short: "Export authoring assets to interchange files with a manifest",
	Long: "AssetBridge exports the selected assets of a content catalog to interchange files " +
		"for use in another tool.\n\n" +
		"Each asset is exported by the strategy for its kind: meshes, skeletal meshes and " +
		"animations become mesh files, textures become PNG images, and materials export " +
		"every texture they reference. The run writes export_report.json, a manifest of " +
		"everything produced, which downstream importers read and 'assetbridge verify' checks.",
	PersistentPreRunE: runInitialize,
}

func init() {
	logManager = logging.NewManager()
	slog.SetDefault(logManager.Logger())

	rootCmd.AddCommand(export.ExportCmd)
	rootCmd.AddCommand(verify.VerifyCmd)
	rootCmd.AddCommand(catalogcmd.CatalogCmd)
	rootCmd.AddCommand(configcmd.ConfigCmd)
	rootCmd.AddCommand(versioncmd.VersionCmd)
}

func runInitialize(cmd *cobra.Command, args []string) error {
	logger := logManager.Logger()

	if err := config.Init(); err != nil {
		return err
	}

	levelStr := config.GetString("log_level")
	level, ok := logging.ParseLevel(levelStr)
	if !ok && levelStr != "" {
		logger.Warn("invalid log level configured, using default", "configured", levelStr, "default", "info")
	}

	if err := logManager.Upgrade(config.GetPath("log_file"), level); err != nil {
		logger.Warn("failed to enable file logging, continuing with stderr only", "error", err)
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	defer func() { _ = logManager.Close() }()

	err := rootCmd.Execute()

	if err != nil {
		cmd, _, _ := rootCmd.Find(os.Args[1:])
		if cmd == nil {
			cmd = rootCmd
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if !cmd.SilenceUsage {
			fmt.Fprintln(os.Stderr)
			cmd.SetOut(os.Stderr)
			_ = cmd.Usage()
		}

		return err
	}

	return nil
}
