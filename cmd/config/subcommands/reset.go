package subcommands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	resetConfirm bool
)

// ResetCmd resets the configuration to defaults.
var ResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset configuration to default values",
	Long: "Reset configuration to default values.\n\n" +
		"Removes the configuration file, reverting all settings to their default " +
		"values. A backup of the current file is created first. Use --confirm to " +
		"skip the confirmation prompt.",
	Example: `  # Reset configuration (prompts for confirmation)
  assetbridge config reset

  # Reset configuration without confirmation
  assetbridge config reset --confirm`,
	Args:    cobra.NoArgs,
	PreRunE: validateReset,
	RunE:    runReset,
}

func init() {
	ResetCmd.Flags().BoolVar(&resetConfirm, "confirm", false, "Skip confirmation prompt")
}

func validateReset(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := configPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintln(out, "No configuration file found. Using defaults.")
		return nil
	}

	if !resetConfirm {
		fmt.Fprintf(out, "This will reset configuration to defaults and remove: %s\n", path)
		fmt.Fprint(out, "Are you sure? [y/N]: ")

		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if r := strings.TrimSpace(response); r != "y" && r != "Y" {
			fmt.Fprintln(out, "Reset cancelled.")
			return nil
		}
	}

	backupPath := fmt.Sprintf("%s.backup.%d", path, time.Now().Unix())
	if err := copyFile(path, backupPath); err != nil {
		return fmt.Errorf("failed to create backup; %w", err)
	}
	fmt.Fprintf(out, "Backup created: %s\n", backupPath)

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove config file; %w", err)
	}

	fmt.Fprintln(out, "Configuration reset to defaults.")
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0600)
}
