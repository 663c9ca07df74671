// Package asset defines the host-independent view of authoring assets that the
// export engine resolves, classifies and exports.
package asset

import (
	"path"
	"strings"
)

// Kind is the closed set of asset kinds the exporter knows how to handle.
type Kind int

const (
	// KindUnknown is any asset whose host class has no export strategy.
	KindUnknown Kind = iota

	// KindStaticMesh is non-deforming geometry.
	KindStaticMesh

	// KindSkeletalMesh is geometry bound to a skeleton.
	KindSkeletalMesh

	// KindAnimation is an animation sequence.
	KindAnimation

	// KindMaterial is a material whose texture parameters are exported as dependents.
	KindMaterial

	// KindTexture is a 2D raster texture.
	KindTexture
)

// Kinds lists every exportable kind in summary order.
var Kinds = []Kind{KindStaticMesh, KindSkeletalMesh, KindAnimation, KindMaterial, KindTexture}

// String returns the label used for the kind in manifests and summaries.
func (k Kind) String() string {
	switch k {
	case KindStaticMesh:
		return "StaticMesh"
	case KindSkeletalMesh:
		return "SkeletalMesh"
	case KindAnimation:
		return "Animation"
	case KindMaterial:
		return "Material"
	case KindTexture:
		return "Texture"
	default:
		return "Unknown"
	}
}

// Prefix returns the output filename prefix for the kind.
func (k Kind) Prefix() string {
	switch k {
	case KindStaticMesh:
		return "SM"
	case KindSkeletalMesh:
		return "SK"
	case KindAnimation:
		return "ANIM"
	case KindMaterial:
		return "MAT"
	case KindTexture:
		return "TEX"
	default:
		return ""
	}
}

// ParseKind converts a manifest label back into a Kind.
// Returns (KindUnknown, false) for unrecognized labels.
func ParseKind(label string) (Kind, bool) {
	for _, k := range Kinds {
		if k.String() == label {
			return k, true
		}
	}
	return KindUnknown, false
}

// KindFromClass maps a host class name to a Kind.
// Class names are the host's runtime class labels, e.g. "AnimSequence" or "Texture2D".
func KindFromClass(className string) Kind {
	switch className {
	case "StaticMesh":
		return KindStaticMesh
	case "SkeletalMesh":
		return KindSkeletalMesh
	case "AnimSequence":
		return KindAnimation
	case "Material":
		return KindMaterial
	case "Texture2D":
		return KindTexture
	default:
		return KindUnknown
	}
}

// Handle is a transient reference to one concrete asset in the host.
type Handle struct {
	// Identity is the stable unique path of the asset, used for deduplication.
	Identity string

	// Kind is the asset's export classification.
	Kind Kind

	// DisplayName is the short name used in output filenames and logs.
	DisplayName string

	// ClassName is the host class label the Kind was derived from.
	ClassName string

	// Source is a host-private locator the host's writer understands.
	Source string

	// Skeleton is the identity of the skeletal mesh an animation is authored against.
	// Empty for every other kind.
	Skeleton string
}

// FolderRef identifies a folder in the host's hierarchical asset namespace.
type FolderRef string

// Normalize returns the folder under the given content root with a leading
// slash and no trailing slash. A folder already under root is left as is.
func (f FolderRef) Normalize(root string) FolderRef {
	root = "/" + strings.Trim(root, "/")
	p := "/" + strings.Trim(strings.TrimSpace(string(f)), "/")
	if root == "/" || p == root || strings.HasPrefix(p, root+"/") {
		return FolderRef(path.Clean(p))
	}
	if p == "/" {
		return FolderRef(root)
	}
	return FolderRef(path.Clean(root + p))
}

// Contains reports whether the given folder path is f or one of its descendants.
func (f FolderRef) Contains(folder string) bool {
	base := strings.TrimSuffix(string(f), "/")
	if base == "" {
		return true
	}
	return folder == base || strings.HasPrefix(folder, base+"/")
}

// FolderOf returns the folder portion of an asset identity such as
// "/Game/Props/Chair.Chair".
func FolderOf(identity string) string {
	dir := path.Dir(identity)
	if dir == "." {
		return "/"
	}
	return dir
}
