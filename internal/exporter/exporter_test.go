package exporter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leefowlercu/assetbridge/internal/asset"
	"github.com/leefowlercu/assetbridge/internal/host/hosttest"
	"github.com/leefowlercu/assetbridge/internal/report"
	"github.com/leefowlercu/assetbridge/internal/selection"
	"github.com/leefowlercu/assetbridge/internal/strategies"
)

func newTestExporter(h *hosttest.Fake, opts ...Option) *Exporter {
	base := []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithClock(func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }),
	}
	return New(h, append(base, opts...)...)
}

func TestRunExport_EmptySelection(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out")

	res, err := newTestExporter(hosttest.New()).Run(context.Background(), root)
	require.NoError(t, err)

	assert.DirExists(t, root)
	assert.NoFileExists(t, filepath.Join(root, report.ManifestName))
	assert.Empty(t, res.ManifestPath)
	assert.Zero(t, res.Stats.TotalSucceeded())
	assert.Zero(t, res.Stats.TotalFailed())
	assert.Zero(t, res.Stats.Unsupported)
	for _, k := range asset.Kinds {
		assert.Zero(t, res.Stats.Succeeded[k], "kind %v", k)
	}

	assert.True(t, newTestExporter(hosttest.New()).RunExport(context.Background(), root))
}

func TestRun_FullSelection(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	fake := hosttest.New()

	chair := fake.Asset("/Game/Props/Chair.Chair", "StaticMesh", "Chair")
	table := fake.Asset("/Game/Props/Table.Table", "StaticMesh", "Table")
	wood := fake.Asset("/Game/Props/Wood.Wood", "Material", "Wood")
	oak := fake.Asset("/Game/Props/Oak.Oak", "Texture2D", "Oak")
	sound := fake.Asset("/Game/Props/Creak.Creak", "SoundWave", "Creak")
	fake.BindTexture(wood, "BaseColor", oak.Identity)
	fake.Selected = []asset.Handle{chair}
	fake.Folders = []asset.FolderRef{"/Game/Props"}
	fake.SetFolder("/Game/Props", chair, table, wood, sound)

	res, err := newTestExporter(fake, WithGenerator("assetbridge test")).Run(ctx, root)
	require.NoError(t, err)

	assert.Len(t, res.Resolution.Set, 4)
	assert.Equal(t, 2, res.Stats.Succeeded[asset.KindStaticMesh])
	assert.Equal(t, 1, res.Stats.Succeeded[asset.KindMaterial])
	assert.Equal(t, 1, res.Stats.Succeeded[asset.KindTexture])
	assert.Equal(t, 1, res.Stats.Unsupported)
	assert.Equal(t, filepath.Join(root, report.ManifestName), res.ManifestPath)

	m, err := report.Load(res.ManifestPath)
	require.NoError(t, err)
	assert.Equal(t, 4, m.ExportSession.TotalAssets)
	assert.Equal(t, res.RunID, m.ExportSession.RunID)
	assert.Equal(t, "assetbridge test", m.ExportSession.Generator)
	assert.True(t, report.Verify(m).OK())

	for _, name := range []string{"SM_Chair.fbx", "SM_Table.fbx", "MAT_Wood.json", "TEX_Oak_BaseColor.png"} {
		assert.FileExists(t, filepath.Join(root, name))
	}
}

func TestRun_FailureIsolation(t *testing.T) {
	fake := hosttest.New()
	a := fake.Asset("/Game/P/A.A", "StaticMesh", "A")
	b := fake.Asset("/Game/P/B.B", "StaticMesh", "B")
	c := fake.Asset("/Game/P/C.C", "StaticMesh", "C")
	fake.Selected = []asset.Handle{a, b, c}
	fake.FailFor = map[string]error{b.Identity: errors.New("writer crashed")}

	res, err := newTestExporter(fake).Run(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Stats.Succeeded[asset.KindStaticMesh])
	assert.Equal(t, 1, res.Stats.Failed[asset.KindStaticMesh])

	m, err := report.Load(res.ManifestPath)
	require.NoError(t, err)
	require.Len(t, m.Assets, 2)
	assert.Equal(t, "A", m.Assets[0].Name)
	assert.Equal(t, "C", m.Assets[1].Name)
}

func TestRun_SelectionQueryFailure(t *testing.T) {
	fake := hosttest.New()
	fake.SelectErr = errors.New("editor busy")

	e := newTestExporter(fake)
	res, err := e.Run(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrRunFailure)
	assert.ErrorIs(t, err, fake.SelectErr)
	require.NotNil(t, res)
	assert.Zero(t, res.Stats.TotalSucceeded())

	assert.False(t, e.RunExport(context.Background(), t.TempDir()))
}

func TestRun_OutputRootFailure(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := newTestExporter(hosttest.New()).Run(context.Background(), file)
	assert.ErrorIs(t, err, ErrRunFailure)

	_, err = newTestExporter(hosttest.New()).Run(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrRunFailure)
}

func TestRun_ManifestWriteFailure(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, report.ManifestName, "blocker"), 0755))

	fake := hosttest.New()
	fake.Selected = []asset.Handle{fake.Asset("/Game/A.A", "StaticMesh", "A")}

	res, err := newTestExporter(fake).Run(context.Background(), root)
	assert.ErrorIs(t, err, ErrRunFailure)
	assert.Equal(t, 1, res.Stats.Succeeded[asset.KindStaticMesh], "summary still reflects the dispatch")
}

func TestRun_IdempotentOutputRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a", "b")
	fake := hosttest.New()
	fake.Selected = []asset.Handle{fake.Asset("/Game/A.A", "StaticMesh", "A")}
	e := newTestExporter(fake)

	assert.True(t, e.RunExport(context.Background(), root))
	assert.True(t, e.RunExport(context.Background(), root))
}

func TestRun_AnimationSkeleton(t *testing.T) {
	fake := hosttest.New()
	run := fake.Asset("/Game/A/Run.Run", "AnimSequence", "Run")
	hero := fake.Asset("/Game/C/Hero.Hero", "SkeletalMesh", "Hero")
	chair := fake.Asset("/Game/P/Chair.Chair", "StaticMesh", "Chair")
	fake.Selected = []asset.Handle{run}

	_, err := newTestExporter(fake, WithAnimationSkeleton(hero.Identity)).Run(context.Background(), t.TempDir())
	require.NoError(t, err)
	writes := fake.WritesFor(run.Identity)
	require.Len(t, writes, 1)
	require.NotNil(t, writes[0].Options.Skeleton)
	assert.Equal(t, hero.Identity, writes[0].Options.Skeleton.Identity)

	for _, bad := range []string{chair.Identity, "/Game/Missing.Missing"} {
		_, err := newTestExporter(fake, WithAnimationSkeleton(bad)).Run(context.Background(), t.TempDir())
		require.NoError(t, err)
		writes := fake.WritesFor(run.Identity)
		assert.Nil(t, writes[len(writes)-1].Options.Skeleton, "skeleton %s should be ignored", bad)
	}
}

func TestRun_SelectionSourceOverride(t *testing.T) {
	fake := hosttest.New()
	a := fake.Asset("/Game/A.A", "StaticMesh", "A")
	fake.Asset("/Game/B.B", "StaticMesh", "B")
	fake.Selected = []asset.Handle{a}

	src := selection.NewListSource(fake, selection.File{Assets: []string{"/Game/B.B"}})
	res, err := newTestExporter(fake, WithSelectionSource(src)).Run(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"/Game/B.B"}, res.Resolution.Set.Identities())
}

func TestRun_StrategyOptionsAndMetrics(t *testing.T) {
	root := t.TempDir()
	promPath := filepath.Join(t.TempDir(), "assetbridge.prom")
	fake := hosttest.New()
	fake.Selected = []asset.Handle{
		fake.Asset("/Game/A.A", "StaticMesh", "A"),
		fake.Asset("/Game/T.T", "Texture2D", "T"),
	}

	_, err := newTestExporter(fake,
		WithStrategyOptions(strategies.WithMeshExtension("obj"), strategies.WithDirectTextureSuffix("solo")),
		WithMetricsTextfile(promPath),
	).Run(context.Background(), root)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, "SM_A.obj"))
	assert.FileExists(t, filepath.Join(root, "TEX_T_solo.png"))

	data, err := os.ReadFile(promPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `assetbridge_exports_total{kind="StaticMesh"} 1`)
	assert.Contains(t, string(data), "assetbridge_resolved_assets 2")
}
