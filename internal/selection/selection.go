// Package selection resolves a host selection of assets and folders into the
// ordered, deduplicated set of concrete assets an export run processes.
package selection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leefowlercu/assetbridge/internal/asset"
	"github.com/leefowlercu/assetbridge/internal/host"
)

// Set is an ordered sequence of assets in which no two elements share an identity.
type Set []asset.Handle

// Identities returns the identity of every element in order.
func (s Set) Identities() []string {
	ids := make([]string, len(s))
	for i, h := range s {
		ids[i] = h.Identity
	}
	return ids
}

// FolderFailure is the result of a folder expansion that failed entirely.
type FolderFailure struct {
	Folder asset.FolderRef
	Err    error
}

// Resolution is the outcome of one resolve pass.
type Resolution struct {
	Set            Set
	Individual     int
	Expanded       int
	Duplicates     int
	SkippedFolders []FolderFailure
}

// Empty reports whether there is nothing to export.
func (r Resolution) Empty() bool {
	return len(r.Set) == 0
}

// Resolver expands folders through the host registry and merges the result
// with the individually selected assets.
type Resolver struct {
	registry host.Registry
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger for soft warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver over the given registry.
func NewResolver(registry host.Registry, opts ...Option) *Resolver {
	r := &Resolver{
		registry: registry,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve merges individual with the recursive contents of folders.
// Individually selected assets come first, then folder contents in folder
// order and per-folder discovery order. The first occurrence of an identity wins.
func (r *Resolver) Resolve(ctx context.Context, individual []asset.Handle, folders []asset.FolderRef) Resolution {
	res := Resolution{Individual: len(individual)}
	seen := make(map[string]struct{}, len(individual))

	add := func(h asset.Handle) {
		if _, dup := seen[h.Identity]; dup {
			res.Duplicates++
			return
		}
		seen[h.Identity] = struct{}{}
		res.Set = append(res.Set, h)
	}

	for _, h := range individual {
		add(h)
	}

	for _, folder := range folders {
		contents, err := r.registry.ExpandFolder(ctx, folder)
		if err != nil {
			r.logger.Warn("failed to expand folder; skipping", "folder", folder, "error", err)
			res.SkippedFolders = append(res.SkippedFolders, FolderFailure{Folder: folder, Err: err})
			continue
		}
		r.logger.Debug("expanded folder", "folder", folder, "assets", len(contents))

		res.Expanded += len(contents)
		for _, h := range contents {
			add(h)
		}
	}

	r.logger.Info("selection resolved",
		"assets", len(res.Set),
		"individual", res.Individual,
		"expanded", res.Expanded,
		"duplicates", res.Duplicates,
		"skipped_folders", len(res.SkippedFolders),
	)

	return res
}

// ResolveCurrent queries the source for the current selection and resolves it.
// Failing to read the individual selection is an error; failing to read the
// folder selection degrades to no folders.
func (r *Resolver) ResolveCurrent(ctx context.Context, src host.SelectionSource) (Resolution, error) {
	individual, err := src.QueryIndividuallySelected(ctx)
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to query selected assets; %w", err)
	}

	folders, err := src.QueryCurrentlySelectedFolders(ctx)
	if err != nil {
		r.logger.Warn("failed to query selected folders; continuing without folders", "error", err)
		folders = nil
	}

	return r.Resolve(ctx, individual, folders), nil
}
