// Package host defines the narrow contracts the export engine needs from the
// authoring application: selection queries, registry traversal, interchange
// file writes and material introspection.
package host

import (
	"context"

	"github.com/leefowlercu/assetbridge/internal/asset"
)

// LODExport selects which levels of detail a mesh export carries.
type LODExport int

const (
	// LODBase exports only the base level of detail.
	LODBase LODExport = iota

	// LODAll exports every level of detail.
	LODAll
)

// ExportOptions steers a single interchange write.
type ExportOptions struct {
	// Automated suppresses any interactive prompt in the host.
	Automated bool

	// ReplaceIdentical allows overwriting an existing file at the output path.
	ReplaceIdentical bool

	// Collision includes collision geometry.
	Collision bool

	// LevelOfDetail includes LOD meshes for static meshes.
	LevelOfDetail bool

	// LODExport selects LOD levels for skeletal meshes.
	LODExport LODExport

	// Skeleton binds an animation export to a specific skeletal mesh.
	// Nil means the animation's own default binding.
	Skeleton *asset.Handle
}

// SelectionSource reports what the user currently has selected.
type SelectionSource interface {
	// QueryIndividuallySelected returns the assets selected one by one.
	QueryIndividuallySelected(ctx context.Context) ([]asset.Handle, error)

	// QueryCurrentlySelectedFolders returns the selected folders. Hosts without
	// an active folder selection return an empty slice.
	QueryCurrentlySelectedFolders(ctx context.Context) ([]asset.FolderRef, error)
}

// Registry is the host's asset registry.
type Registry interface {
	// ExpandFolder returns every asset under folder, recursing into sub-folders.
	// Assets that fail to materialize are omitted rather than reported as errors.
	ExpandFolder(ctx context.Context, folder asset.FolderRef) ([]asset.Handle, error)

	// LookupAsset returns the asset with the given identity.
	LookupAsset(ctx context.Context, identity string) (asset.Handle, error)
}

// Writer performs the actual interchange-format and image writes.
type Writer interface {
	// WriteInterchangeFile writes the asset to outputPath. A false result with a
	// nil error means the host declined or failed the write without a cause.
	WriteInterchangeFile(ctx context.Context, a asset.Handle, outputPath string, opts ExportOptions) (bool, error)
}

// MaterialIntrospector exposes a material's texture-valued parameters.
type MaterialIntrospector interface {
	// ListTextureParameters returns the material's texture parameter names in declaration order.
	ListTextureParameters(ctx context.Context, material asset.Handle) ([]string, error)

	// GetTextureParameterValue returns the texture bound to param, or nil when unbound.
	GetTextureParameterValue(ctx context.Context, material asset.Handle, param string) (*asset.Handle, error)
}

// Host bundles every collaborator the exporter talks to.
type Host interface {
	SelectionSource
	Registry
	Writer
	MaterialIntrospector
}
