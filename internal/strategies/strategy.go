// Package strategies implements the per-kind export routines and the
// dispatcher that routes resolved assets to them.
package strategies

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/leefowlercu/assetbridge/internal/asset"
	"github.com/leefowlercu/assetbridge/internal/fsutil"
	"github.com/leefowlercu/assetbridge/internal/host"
	"github.com/leefowlercu/assetbridge/internal/ledger"
)

// ErrStrategyFailure marks an export of one asset that did not produce its artifact.
var ErrStrategyFailure = errors.New("export failed")

// Default naming and metadata values.
const (
	DefaultMeshExtension       = "fbx"
	DefaultDirectTextureSuffix = "direct"
	DefaultShaderModel         = "Standard"
)

// Strategy exports one kind of asset.
type Strategy interface {
	// Kind returns the asset kind this strategy handles.
	Kind() asset.Kind

	// Export writes the asset's artifacts under outputRoot and records every
	// confirmed artifact in rec. Failures are returned in the Outcome, never panicked.
	Export(ctx context.Context, a asset.Handle, outputRoot string, rec ledger.Recorder) Outcome
}

// Outcome is the result of exporting one asset.
type Outcome struct {
	// Record is the asset's own record on success.
	Record *ledger.Record

	// Err wraps ErrStrategyFailure on failure.
	Err error
}

// OK reports whether the export succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil && o.Record != nil
}

func succeeded(rec ledger.Record) Outcome {
	return Outcome{Record: &rec}
}

func failed(a asset.Handle, cause error) Outcome {
	if cause == nil {
		return Outcome{Err: fmt.Errorf("%s %q: %w", a.Kind, a.DisplayName, ErrStrategyFailure)}
	}
	return Outcome{Err: fmt.Errorf("%s %q: %w; %w", a.Kind, a.DisplayName, ErrStrategyFailure, cause)}
}

// settings holds what every strategy shares: collaborators and naming rules.
type settings struct {
	writer        host.Writer
	logger        *slog.Logger
	now           func() time.Time
	meshExtension string
	directSuffix  string
	shaderModel   string
}

// Option configures the strategies built by NewDispatcher.
type Option func(*settings)

// WithLogger sets the logger used for per-asset outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithClock sets the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

// WithMeshExtension sets the interchange file extension for meshes and animations.
func WithMeshExtension(ext string) Option {
	return func(s *settings) {
		s.meshExtension = strings.TrimPrefix(ext, ".")
	}
}

// WithDirectTextureSuffix sets the suffix used for directly selected textures.
func WithDirectTextureSuffix(suffix string) Option {
	return func(s *settings) {
		s.directSuffix = suffix
	}
}

// WithShaderModel sets the shader model label written into material metadata.
func WithShaderModel(model string) Option {
	return func(s *settings) {
		s.shaderModel = model
	}
}

func newSettings(w host.Writer, opts ...Option) *settings {
	s := &settings{
		writer:        w,
		logger:        slog.Default(),
		now:           time.Now,
		meshExtension: DefaultMeshExtension,
		directSuffix:  DefaultDirectTextureSuffix,
		shaderModel:   DefaultShaderModel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ArtifactName builds the deterministic output filename for an asset.
// An empty suffix is omitted.
func ArtifactName(kind asset.Kind, displayName, suffix, ext string) string {
	name := kind.Prefix() + "_" + sanitizeName(displayName)
	if suffix != "" {
		name += "_" + sanitizeName(suffix)
	}
	return name + "." + strings.TrimPrefix(ext, ".")
}

// sanitizeName keeps a display name from escaping the output root.
func sanitizeName(name string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_")
	name = r.Replace(strings.TrimSpace(name))
	if name == "" || name == "." || name == ".." {
		return "unnamed"
	}
	return name
}

// write delegates one interchange write to the host and converts every
// non-success into an error.
func (s *settings) write(ctx context.Context, a asset.Handle, outputPath string, opts host.ExportOptions) error {
	ok, err := s.writer.WriteInterchangeFile(ctx, a, outputPath, opts)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("host reported an unsuccessful write")
	}
	return nil
}

// record builds and appends the record of an artifact that is now on disk.
func (s *settings) record(rec ledger.Recorder, kind asset.Kind, name, outputPath string, deps []ledger.Artifact) ledger.Record {
	checksum, err := fsutil.HashFile(outputPath)
	if err != nil {
		s.logger.Warn("failed to checksum exported artifact", "asset", name, "path", outputPath, "error", err)
		checksum = ""
	}

	r := ledger.Record{
		Kind:       kind,
		SourceName: name,
		OutputPath: filepath.ToSlash(outputPath),
		Dependents: deps,
		Checksum:   checksum,
		Timestamp:  s.now(),
	}
	rec.Record(r)
	return r
}

// exportSingle is the shared body of the strategies that produce exactly one
// interchange file per asset.
func (s *settings) exportSingle(ctx context.Context, kind asset.Kind, a asset.Handle, outputRoot string, opts host.ExportOptions, rec ledger.Recorder) Outcome {
	outputPath := filepath.Join(outputRoot, ArtifactName(kind, a.DisplayName, "", s.meshExtension))

	if err := s.write(ctx, a, outputPath, opts); err != nil {
		s.logger.Error("export failed", "kind", kind.String(), "asset", a.DisplayName, "error", err)
		return failed(a, err)
	}

	r := s.record(rec, kind, a.DisplayName, outputPath, nil)
	s.logger.Info("exported", "kind", kind.String(), "asset", a.DisplayName, "path", r.OutputPath)
	return succeeded(r)
}
