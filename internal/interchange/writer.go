package interchange

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/leefowlercu/assetbridge/internal/asset"
	"github.com/leefowlercu/assetbridge/internal/fsutil"
	"github.com/leefowlercu/assetbridge/internal/host"
)

// Writer writes interchange files from the source files of catalogued assets.
type Writer struct {
	registry *Registry
	logger   *slog.Logger
}

var _ host.Writer = (*Writer)(nil)

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithRegistry sets the encoder registry.
func WithRegistry(r *Registry) WriterOption {
	return func(w *Writer) {
		w.registry = r
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) {
		w.logger = logger
	}
}

// NewWriter creates a Writer using DefaultRegistry unless configured otherwise.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{
		registry: DefaultRegistry(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteInterchangeFile encodes the asset's source and writes it to outputPath.
// It returns false without error when the asset has no source. Unless
// opts.ReplaceIdentical is set, an existing file with identical content is
// left in place.
func (w *Writer) WriteInterchangeFile(ctx context.Context, a asset.Handle, outputPath string, opts host.ExportOptions) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if a.Source == "" {
		w.logger.Warn("asset has no source to export", "asset", a.DisplayName, "identity", a.Identity)
		return false, nil
	}

	if opts.Skeleton != nil {
		if opts.Skeleton.Kind != asset.KindSkeletalMesh {
			return false, fmt.Errorf("skeleton %s is a %s, not a skeletal mesh", opts.Skeleton.Identity, opts.Skeleton.Kind)
		}
		if a.Skeleton != "" && a.Skeleton != opts.Skeleton.Identity {
			w.logger.Info("rebinding animation skeleton", "asset", a.DisplayName, "from", a.Skeleton, "to", opts.Skeleton.Identity)
		}
	}

	enc := w.registry.EncoderFor(a.Kind)
	if enc == nil {
		return false, fmt.Errorf("no encoder for %s", a.Kind)
	}

	src, err := os.ReadFile(a.Source)
	if err != nil {
		return false, fmt.Errorf("failed to read source; %w", err)
	}

	out, err := enc.Encode(ctx, a, src)
	if err != nil {
		return false, err
	}

	w.logger.Debug("writing interchange file",
		"asset", a.DisplayName,
		"encoder", enc.Name(),
		"path", outputPath,
		"collision", opts.Collision,
		"lod", opts.LevelOfDetail,
		"lod_export", opts.LODExport,
		"automated", opts.Automated,
	)

	if !opts.ReplaceIdentical {
		existing, err := os.ReadFile(outputPath)
		switch {
		case err == nil && bytes.Equal(existing, out):
			w.logger.Debug("identical file exists; not replacing", "path", outputPath)
			return true, nil
		case err != nil && !errors.Is(err, os.ErrNotExist):
			return false, fmt.Errorf("failed to read existing output; %w", err)
		}
	}

	if err := fsutil.AtomicWriteFile(outputPath, out, 0644); err != nil {
		return false, err
	}
	return true, nil
}
