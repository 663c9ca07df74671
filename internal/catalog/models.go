package catalog

import (
	"path"
	"strings"
	"time"

	"github.com/leefowlercu/assetbridge/internal/asset"
)

// Entry is one asset row of the catalog.
type Entry struct {
	ID          int64
	Identity    string
	ClassName   string
	DisplayName string
	Folder      string
	SourcePath  string
	Skeleton    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Handle converts the entry to the engine's view of the asset.
func (e Entry) Handle() asset.Handle {
	return asset.Handle{
		Identity:    e.Identity,
		Kind:        asset.KindFromClass(e.ClassName),
		DisplayName: e.DisplayName,
		ClassName:   e.ClassName,
		Source:      e.SourcePath,
		Skeleton:    e.Skeleton,
	}
}

// TextureParameter is one texture slot of a material.
type TextureParameter struct {
	Material  string
	Parameter string
	// Texture is the identity of the bound texture, empty when the slot has no value.
	Texture string
	Ordinal int
}

// normalize fills derived fields of an entry under the given content root.
// The identity defaults to "<folder>/<name>.<name>" and the folder to the
// identity's directory.
func (e *Entry) normalize(contentRoot string) {
	e.DisplayName = strings.TrimSpace(e.DisplayName)
	e.Identity = strings.TrimSpace(e.Identity)

	if e.Folder != "" {
		e.Folder = string(asset.FolderRef(e.Folder).Normalize(contentRoot))
	}

	if e.Identity == "" && e.Folder != "" && e.DisplayName != "" {
		e.Identity = path.Join(e.Folder, e.DisplayName+"."+e.DisplayName)
	}
	if e.Folder == "" && e.Identity != "" {
		e.Folder = asset.FolderOf(e.Identity)
	}
	if e.DisplayName == "" && e.Identity != "" {
		base := path.Base(e.Identity)
		if i := strings.IndexByte(base, '.'); i > 0 {
			base = base[:i]
		}
		e.DisplayName = base
	}
}
