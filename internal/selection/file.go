package selection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leefowlercu/assetbridge/internal/asset"
	"github.com/leefowlercu/assetbridge/internal/host"
)

// File is the on-disk selection format.
//
//	assets:
//	  - /Game/Props/Chair.Chair
//	folders:
//	  - Props/Outdoor
type File struct {
	Assets  []string `yaml:"assets"`
	Folders []string `yaml:"folders"`
}

// LoadFile reads a selection file. A missing file is an empty selection.
func LoadFile(path string) (File, error) {
	var f File

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return f, fmt.Errorf("failed to read selection file; %w", err)
	}

	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("failed to parse selection file %s; %w", path, err)
	}
	return f, nil
}

// ListSource is a fixed selection of identities and folders looked up in a registry.
type ListSource struct {
	registry host.Registry
	list     File
	logger   *slog.Logger
}

var _ host.SelectionSource = (*ListSource)(nil)

// NewListSource creates a ListSource over list.
func NewListSource(registry host.Registry, list File, opts ...Option) *ListSource {
	return &ListSource{registry: registry, list: list, logger: loggerFrom(opts)}
}

// QueryIndividuallySelected looks up every listed identity. Unknown
// identities are logged and skipped.
func (s *ListSource) QueryIndividuallySelected(ctx context.Context) ([]asset.Handle, error) {
	return lookupAll(ctx, s.registry, s.logger, s.list.Assets), nil
}

// QueryCurrentlySelectedFolders returns the listed folders.
func (s *ListSource) QueryCurrentlySelectedFolders(ctx context.Context) ([]asset.FolderRef, error) {
	return toFolderRefs(s.list.Folders), nil
}

// FileSource reads the selection from a YAML file on every query, so edits
// between runs are picked up.
type FileSource struct {
	path     string
	registry host.Registry
	logger   *slog.Logger
}

var _ host.SelectionSource = (*FileSource)(nil)

// NewFileSource creates a FileSource reading path.
func NewFileSource(path string, registry host.Registry, opts ...Option) *FileSource {
	return &FileSource{path: path, registry: registry, logger: loggerFrom(opts)}
}

// QueryIndividuallySelected loads the file and looks up its assets.
func (s *FileSource) QueryIndividuallySelected(ctx context.Context) ([]asset.Handle, error) {
	f, err := LoadFile(s.path)
	if err != nil {
		return nil, err
	}
	return lookupAll(ctx, s.registry, s.logger, f.Assets), nil
}

// QueryCurrentlySelectedFolders loads the file and returns its folders.
func (s *FileSource) QueryCurrentlySelectedFolders(ctx context.Context) ([]asset.FolderRef, error) {
	f, err := LoadFile(s.path)
	if err != nil {
		return nil, err
	}
	return toFolderRefs(f.Folders), nil
}

// loggerFrom applies the resolver options to pick up a logger for the sources.
func loggerFrom(opts []Option) *slog.Logger {
	r := &Resolver{logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r.logger
}

func lookupAll(ctx context.Context, registry host.Registry, logger *slog.Logger, identities []string) []asset.Handle {
	handles := make([]asset.Handle, 0, len(identities))
	for _, id := range identities {
		h, err := registry.LookupAsset(ctx, id)
		if err != nil {
			logger.Warn("failed to load selected asset; skipping", "identity", id, "error", err)
			continue
		}
		handles = append(handles, h)
	}
	return handles
}

func toFolderRefs(folders []string) []asset.FolderRef {
	refs := make([]asset.FolderRef, 0, len(folders))
	for _, f := range folders {
		if f == "" {
			continue
		}
		refs = append(refs, asset.FolderRef(f))
	}
	return refs
}
