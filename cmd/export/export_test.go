package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leefowlercu/assetbridge/internal/asset"
	"github.com/leefowlercu/assetbridge/internal/catalog"
	"github.com/leefowlercu/assetbridge/internal/exporter"
	"github.com/leefowlercu/assetbridge/internal/report"
	"github.com/leefowlercu/assetbridge/internal/selection"
	"github.com/leefowlercu/assetbridge/internal/strategies"
	"github.com/leefowlercu/assetbridge/internal/testutil"
)

const seedYAML = `assets:
  - class: StaticMesh
    name: Chair
    folder: Props
    source: sources/chair.fbx
  - class: StaticMesh
    name: Table
    folder: Props
    source: sources/table.fbx
  - class: Blueprint
    name: Door
    folder: Props
    source: sources/door.bp
`

func setupCatalog(t *testing.T, env *testutil.TestEnv) {
	t.Helper()

	seedDir := t.TempDir()
	env.WriteFile(seedDir, "sources/chair.fbx", "chair-mesh")
	env.WriteFile(seedDir, "sources/table.fbx", "table-mesh")
	env.WriteFile(seedDir, "sources/door.bp", "door")
	seedPath := env.WriteFile(seedDir, "seed.yaml", seedYAML)

	ctx := context.Background()
	seed, err := catalog.LoadSeed(seedPath)
	require.NoError(t, err)

	cat, err := catalog.Open(ctx, env.CatalogPath())
	require.NoError(t, err)
	defer cat.Close()

	_, err = cat.ImportSeed(ctx, seed)
	require.NoError(t, err)
}

func createTestCommand() *cobra.Command {
	exportOutput = ""
	exportAssets = nil
	exportFolders = nil
	exportFormat = "text"

	cmd := &cobra.Command{
		Use:     ExportCmd.Use,
		Args:    ExportCmd.Args,
		PreRunE: ExportCmd.PreRunE,
		RunE:    ExportCmd.RunE,
	}
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "")
	cmd.Flags().StringArrayVar(&exportAssets, "asset", nil, "")
	cmd.Flags().StringArrayVar(&exportFolders, "folder", nil, "")
	cmd.Flags().StringVar(&exportFormat, "format", "text", "")
	return cmd
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := createTestCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestExportCmd_FolderFlag(t *testing.T) {
	env := testutil.NewTestEnv(t)
	setupCatalog(t, env)

	out, err := execute(t, "--folder", "/Game/Props")
	require.NoError(t, err)

	assert.Contains(t, out, "Export summary")
	assert.Contains(t, out, "StaticMesh")
	assert.Contains(t, out, filepath.Join(env.OutputDir, report.ManifestName))

	data, err := os.ReadFile(filepath.Join(env.OutputDir, "SM_Chair.fbx"))
	require.NoError(t, err)
	assert.Equal(t, "chair-mesh", string(data))

	m, err := report.Load(env.OutputDir)
	require.NoError(t, err)
	assert.Equal(t, 2, m.ExportSession.TotalAssets)
	assert.True(t, report.Verify(m).OK())
}

func TestExportCmd_SelectionFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	setupCatalog(t, env)
	env.WriteFile(env.ConfigDir, "selection.yaml", "assets:\n  - /Game/Props/Table.Table\n")

	out := t.TempDir()
	_, err := execute(t, "--output", out)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(out, "SM_Table.fbx"))
	assert.NoFileExists(t, filepath.Join(out, "SM_Chair.fbx"))
	assert.FileExists(t, filepath.Join(out, report.ManifestName))
}

func TestExportCmd_EmptySelection(t *testing.T) {
	env := testutil.NewTestEnv(t)
	setupCatalog(t, env)

	out, err := execute(t)
	require.NoError(t, err)

	assert.Contains(t, out, "No assets selected")
	assert.NoFileExists(t, filepath.Join(env.OutputDir, report.ManifestName))
}

func TestExportCmd_JSONFormat(t *testing.T) {
	env := testutil.NewTestEnv(t)
	setupCatalog(t, env)

	out, err := execute(t, "--format", "json", "--folder", "Props")
	require.NoError(t, err)

	var result ExportResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	assert.Equal(t, StatusPartial, result.Status)
	assert.Equal(t, 3, result.Resolved)
	assert.Equal(t, 1, result.Unsupported)
	assert.NotEmpty(t, result.RunID)
	require.Len(t, result.Kinds, len(asset.Kinds))
	assert.Equal(t, KindSummary{Kind: "StaticMesh", Exported: 2}, result.Kinds[0])
}

func TestExportCmd_InvalidFormat(t *testing.T) {
	testutil.NewTestEnv(t)

	_, err := execute(t, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestExportCmd_RunFailure(t *testing.T) {
	env := testutil.NewTestEnv(t)
	setupCatalog(t, env)

	blocker := env.WriteFile(t.TempDir(), "file", "x")

	out, err := execute(t, "--output", filepath.Join(blocker, "sub"), "--folder", "/Game/Props")
	require.Error(t, err)
	assert.True(t, errors.Is(err, exporter.ErrRunFailure))
	assert.Contains(t, out, "Export failed")
}

func TestRunStatus(t *testing.T) {
	one := selection.Resolution{Set: selection.Set{{Identity: "/Game/A.A", Kind: asset.KindStaticMesh}}}

	tests := []struct {
		name   string
		res    *exporter.Result
		runErr error
		want   string
	}{
		{"failed", &exporter.Result{Resolution: one}, exporter.ErrRunFailure, StatusFailed},
		{"empty", &exporter.Result{}, nil, StatusEmpty},
		{"success", &exporter.Result{Resolution: one, Stats: strategies.Stats{Succeeded: map[asset.Kind]int{asset.KindStaticMesh: 1}}}, nil, StatusSuccess},
		{"partial failures", &exporter.Result{Resolution: one, Stats: strategies.Stats{Failed: map[asset.Kind]int{asset.KindStaticMesh: 1}}}, nil, StatusPartial},
		{"partial unsupported", &exporter.Result{Resolution: one, Stats: strategies.Stats{Unsupported: 1}}, nil, StatusPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runStatus(tt.res, tt.runErr))
		})
	}
}

func TestWriteSummary_NoManifest(t *testing.T) {
	res := &exporter.Result{
		Resolution: selection.Resolution{
			Set: selection.Set{{Identity: "/Game/A.A"}},
		},
		Stats: strategies.Stats{
			Succeeded:   map[asset.Kind]int{},
			Failed:      map[asset.Kind]int{},
			Unsupported: 1,
		},
	}

	var buf bytes.Buffer
	writeSummary(&buf, res, nil)
	out := buf.String()

	assert.Contains(t, out, "no manifest written")
	assert.NotContains(t, out, "Manifest:")
}

func TestWriteSummary(t *testing.T) {
	res := &exporter.Result{
		Resolution: selection.Resolution{
			Set: selection.Set{{Identity: "/Game/A.A"}, {Identity: "/Game/B.B"}},
			SkippedFolders: []selection.FolderFailure{
				{Folder: "/Game/Broken", Err: errors.New("query failed")},
			},
		},
		Stats: strategies.Stats{
			Succeeded:   map[asset.Kind]int{asset.KindTexture: 1},
			Failed:      map[asset.Kind]int{asset.KindMaterial: 1},
			Unsupported: 2,
		},
		ManifestPath: "/out/export_report.json",
		Duration:     time.Second,
	}

	var buf bytes.Buffer
	writeSummary(&buf, res, nil)
	out := buf.String()

	for _, want := range []string{"Texture", "Material", "Total", "Unsupported:", "/Game/Broken", "query failed", "/out/export_report.json"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
