package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/leefowlercu/assetbridge/internal/asset"
	"github.com/leefowlercu/assetbridge/internal/exporter"
	"github.com/leefowlercu/assetbridge/internal/tui/styles"
)

// ExportResult is the JSON form of an export run.
type ExportResult struct {
	Status         string        `json:"status"`
	RunID          string        `json:"run_id"`
	OutputRoot     string        `json:"output_root,omitempty"`
	Manifest       string        `json:"manifest,omitempty"`
	Resolved       int           `json:"resolved"`
	SkippedFolders []string      `json:"skipped_folders,omitempty"`
	Kinds          []KindSummary `json:"kinds"`
	Unsupported    int           `json:"unsupported"`
	DurationMS     int64         `json:"duration_ms"`
	Error          string        `json:"error,omitempty"`
}

// KindSummary is the per-kind count of one run.
type KindSummary struct {
	Kind     string `json:"kind"`
	Exported int    `json:"exported"`
	Failed   int    `json:"failed"`
}

// Run statuses.
const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusEmpty   = "empty"
	StatusFailed  = "failed"
)

// buildExportResult converts an exporter result into its JSON form.
func buildExportResult(res *exporter.Result, runErr error) *ExportResult {
	out := &ExportResult{
		RunID:      res.RunID,
		OutputRoot: res.OutputRoot,
		Manifest:   res.ManifestPath,
		Resolved:   len(res.Resolution.Set),
		Kinds:      make([]KindSummary, 0, len(asset.Kinds)),
		DurationMS: res.Duration.Milliseconds(),
	}

	for _, f := range res.Resolution.SkippedFolders {
		out.SkippedFolders = append(out.SkippedFolders, string(f.Folder))
	}
	for _, k := range asset.Kinds {
		out.Kinds = append(out.Kinds, KindSummary{
			Kind:     k.String(),
			Exported: res.Stats.Succeeded[k],
			Failed:   res.Stats.Failed[k],
		})
	}
	out.Unsupported = res.Stats.Unsupported
	out.Status = runStatus(res, runErr)
	if runErr != nil {
		out.Error = runErr.Error()
	}

	return out
}

func runStatus(res *exporter.Result, runErr error) string {
	switch {
	case runErr != nil:
		return StatusFailed
	case res.Resolution.Empty():
		return StatusEmpty
	case res.Stats.TotalFailed() > 0 || res.Stats.Unsupported > 0 || len(res.Resolution.SkippedFolders) > 0:
		return StatusPartial
	default:
		return StatusSuccess
	}
}

func writeJSON(w io.Writer, result *ExportResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result; %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeSummary prints the per-kind table followed by the manifest location.
func writeSummary(w io.Writer, res *exporter.Result, runErr error) {
	fmt.Fprintln(w, styles.Title.Render("Export summary"))

	t := styles.NewTable([]string{"KIND", "EXPORTED", "FAILED"}, 1, 2)
	for _, k := range asset.Kinds {
		t.Row(k.String(),
			styles.Count(res.Stats.Succeeded[k], styles.SuccessText),
			styles.Count(res.Stats.Failed[k], styles.ErrorText),
		)
	}
	t.Row("Total",
		strconv.Itoa(res.Stats.TotalSucceeded()),
		strconv.Itoa(res.Stats.TotalFailed()),
	)
	fmt.Fprintln(w, t.String())

	fmt.Fprintf(w, "%s %d\n", styles.Label.Render("Resolved assets:"), len(res.Resolution.Set))
	if res.Stats.Unsupported > 0 {
		fmt.Fprintf(w, "%s %s\n", styles.Label.Render("Unsupported:"), styles.WarningText.Render(strconv.Itoa(res.Stats.Unsupported)))
	}
	for _, f := range res.Resolution.SkippedFolders {
		fmt.Fprintf(w, "%s %s (%v)\n", styles.WarningText.Render("Skipped folder:"), string(f.Folder), f.Err)
	}

	switch {
	case runErr != nil:
		fmt.Fprintf(w, "%s %v\n", styles.ErrorText.Render(styles.CrossMark+" Export failed:"), runErr)
	case res.Resolution.Empty():
		fmt.Fprintln(w, styles.WarningText.Render("No assets selected; nothing exported."))
	case res.ManifestPath == "":
		fmt.Fprintln(w, styles.WarningText.Render("No artifacts exported; no manifest written."))
	default:
		fmt.Fprintf(w, "%s %s\n", styles.SuccessText.Render(styles.CheckMark+" Manifest:"), res.ManifestPath)
	}
}
