// Package report persists the outcome of an export run as the manifest read
// by the downstream importer, and reads it back for verification.
package report

import (
	"time"

	"github.com/leefowlercu/assetbridge/internal/ledger"
)

// ManifestName is the manifest's filename inside the output root.
const ManifestName = "export_report.json"

// Manifest is the durable form of one export run.
type Manifest struct {
	ExportSession Session      `json:"export_session"`
	Assets        []AssetEntry `json:"assets"`
}

// Session is the run metadata.
type Session struct {
	Timestamp   string `json:"timestamp"`
	TotalAssets int    `json:"total_assets"`
	ExportPath  string `json:"export_path"`
	RunID       string `json:"run_id,omitempty"`
	Generator   string `json:"generator,omitempty"`
}

// AssetEntry is one produced artifact.
type AssetEntry struct {
	Type      string         `json:"type"`
	Name      string         `json:"name"`
	Path      string         `json:"path"`
	Textures  []TextureEntry `json:"textures,omitempty"`
	Checksum  string         `json:"checksum,omitempty"`
	Timestamp string         `json:"timestamp"`
}

// TextureEntry is a texture a material depends on.
type TextureEntry struct {
	Parameter string `json:"parameter"`
	Path      string `json:"path"`
}

// FromSnapshot builds the manifest of a ledger snapshot, one entry per record
// in record order.
func FromSnapshot(snap ledger.Snapshot, outputRoot, runID, generator string, now time.Time) *Manifest {
	m := &Manifest{
		ExportSession: Session{
			Timestamp:   now.Format(time.RFC3339),
			TotalAssets: snap.Total(),
			ExportPath:  outputRoot,
			RunID:       runID,
			Generator:   generator,
		},
		Assets: make([]AssetEntry, 0, len(snap.Records)),
	}

	for _, r := range snap.Records {
		entry := AssetEntry{
			Type:      r.Kind.String(),
			Name:      r.SourceName,
			Path:      r.OutputPath,
			Checksum:  r.Checksum,
			Timestamp: r.Timestamp.Format(time.RFC3339),
		}
		for _, d := range r.Dependents {
			entry.Textures = append(entry.Textures, TextureEntry{Parameter: d.Label, Path: d.Path})
		}
		m.Assets = append(m.Assets, entry)
	}

	return m
}

// Counts returns the number of entries per type label.
func (m *Manifest) Counts() map[string]int {
	counts := make(map[string]int)
	for _, a := range m.Assets {
		counts[a.Type]++
	}
	return counts
}
