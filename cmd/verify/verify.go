// Package verify implements the verify command.
package verify

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/assetbridge/internal/cmdutil"
	"github.com/leefowlercu/assetbridge/internal/config"
	"github.com/leefowlercu/assetbridge/internal/report"
	"github.com/leefowlercu/assetbridge/internal/tui/styles"
)

// ErrVerificationFailed is returned when any manifest entry does not check out.
var ErrVerificationFailed = errors.New("export verification failed")

// VerifyCmd checks an export directory against its manifest.
var VerifyCmd = &cobra.Command{
	Use:   "verify [DIR]",
	Short: "Verify exported files against the export manifest",
	Long: "Verify exported files against the export manifest.\n\n" +
		"Loads export_report.json from DIR (default: export.output_root) and checks that " +
		"every listed artifact and dependent texture exists and that recorded checksums " +
		"still match.",
	Example: `  # Verify the configured output root
  assetbridge verify

  # Verify a specific export
  assetbridge verify ./out`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: validateVerify,
	RunE:    runVerify,
}

func validateVerify(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	dir := config.GetPath("export.output_root")
	if len(args) == 1 {
		dir = args[0]
	}
	dir, err := cmdutil.ResolvePath(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve export directory; %w", err)
	}

	m, err := report.Load(dir)
	if err != nil {
		return err
	}

	v := report.Verify(m)

	fmt.Fprintf(out, "%s %s\n", styles.Label.Render("Manifest:"), dir)
	fmt.Fprintf(out, "%s %s (run %s)\n", styles.Label.Render("Exported:"), m.ExportSession.Timestamp, orDash(m.ExportSession.RunID))
	fmt.Fprintf(out, "%s %d\n", styles.Label.Render("Checked:"), v.Checked)

	if v.OK() {
		fmt.Fprintln(out, styles.SuccessText.Render(styles.CheckMark+" All artifacts verified"))
		return nil
	}

	t := styles.NewTable([]string{"ASSET", "PATH", "PROBLEM"})
	for _, p := range v.Problems {
		t.Row(p.Asset, p.Path, styles.ErrorText.Render(p.Reason))
	}
	fmt.Fprintln(out, t.String())

	return fmt.Errorf("%w; %d of %d artifacts have problems", ErrVerificationFailed, len(v.Problems), v.Checked)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
