package strategies

import (
	"context"

	"github.com/leefowlercu/assetbridge/internal/asset"
	"github.com/leefowlercu/assetbridge/internal/host"
	"github.com/leefowlercu/assetbridge/internal/ledger"
)

// StaticMeshStrategy exports static meshes without collision or LODs.
type StaticMeshStrategy struct {
	s *settings
}

// NewStaticMeshStrategy creates a StaticMeshStrategy writing through w.
func NewStaticMeshStrategy(w host.Writer, opts ...Option) *StaticMeshStrategy {
	return &StaticMeshStrategy{s: newSettings(w, opts...)}
}

// Kind returns KindStaticMesh.
func (m *StaticMeshStrategy) Kind() asset.Kind {
	return asset.KindStaticMesh
}

// Export writes SM_<name>.<ext>.
func (m *StaticMeshStrategy) Export(ctx context.Context, a asset.Handle, outputRoot string, rec ledger.Recorder) Outcome {
	opts := host.ExportOptions{
		Automated:        true,
		ReplaceIdentical: true,
		Collision:        false,
		LevelOfDetail:    false,
	}
	return m.s.exportSingle(ctx, asset.KindStaticMesh, a, outputRoot, opts, rec)
}

// SkeletalMeshStrategy exports skeletal meshes with every level of detail.
type SkeletalMeshStrategy struct {
	s *settings
}

// NewSkeletalMeshStrategy creates a SkeletalMeshStrategy writing through w.
func NewSkeletalMeshStrategy(w host.Writer, opts ...Option) *SkeletalMeshStrategy {
	return &SkeletalMeshStrategy{s: newSettings(w, opts...)}
}

// Kind returns KindSkeletalMesh.
func (m *SkeletalMeshStrategy) Kind() asset.Kind {
	return asset.KindSkeletalMesh
}

// Export writes SK_<name>.<ext>.
func (m *SkeletalMeshStrategy) Export(ctx context.Context, a asset.Handle, outputRoot string, rec ledger.Recorder) Outcome {
	opts := host.ExportOptions{
		Automated:        true,
		ReplaceIdentical: true,
		LODExport:        host.LODAll,
	}
	return m.s.exportSingle(ctx, asset.KindSkeletalMesh, a, outputRoot, opts, rec)
}
