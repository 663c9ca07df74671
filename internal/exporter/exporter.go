// Package exporter runs one export: it ensures the output root, resolves the
// host selection, dispatches every asset to its strategy, writes the manifest
// and reports the per-kind summary.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leefowlercu/assetbridge/internal/asset"
	"github.com/leefowlercu/assetbridge/internal/fsutil"
	"github.com/leefowlercu/assetbridge/internal/host"
	"github.com/leefowlercu/assetbridge/internal/ledger"
	"github.com/leefowlercu/assetbridge/internal/metrics"
	"github.com/leefowlercu/assetbridge/internal/report"
	"github.com/leefowlercu/assetbridge/internal/selection"
	"github.com/leefowlercu/assetbridge/internal/strategies"
)

// ErrRunFailure marks a run that could not complete: the output root, the
// selection query or the manifest write failed.
var ErrRunFailure = errors.New("export run failed")

// Result is the outcome of one run.
type Result struct {
	RunID        string
	OutputRoot   string
	Resolution   selection.Resolution
	Stats        strategies.Stats
	ManifestPath string
	StartedAt    time.Time
	Duration     time.Duration
}

// Exporter runs exports against one host.
type Exporter struct {
	host            host.Host
	source          host.SelectionSource
	logger          *slog.Logger
	now             func() time.Time
	strategyOpts    []strategies.Option
	skeleton        string
	metricsTextfile string
	generator       string
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger passed down to every stage.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		e.now = now
	}
}

// WithSelectionSource overrides the host's own selection.
func WithSelectionSource(src host.SelectionSource) Option {
	return func(e *Exporter) {
		e.source = src
	}
}

// WithStrategyOptions passes naming and metadata options to the strategies.
func WithStrategyOptions(opts ...strategies.Option) Option {
	return func(e *Exporter) {
		e.strategyOpts = append(e.strategyOpts, opts...)
	}
}

// WithAnimationSkeleton binds every exported animation to the skeletal mesh
// with the given identity.
func WithAnimationSkeleton(identity string) Option {
	return func(e *Exporter) {
		e.skeleton = identity
	}
}

// WithMetricsTextfile writes run metrics to path at the end of every run.
func WithMetricsTextfile(path string) Option {
	return func(e *Exporter) {
		e.metricsTextfile = path
	}
}

// WithGenerator sets the generator label recorded in the manifest.
func WithGenerator(generator string) Option {
	return func(e *Exporter) {
		e.generator = generator
	}
}

// New creates an Exporter over h.
func New(h host.Host, opts ...Option) *Exporter {
	e := &Exporter{
		host:   h,
		source: h,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunExport runs an export into outputRoot and reports whether it completed.
// Individual asset failures do not make a run fail; an empty selection is a
// successful run that writes no manifest.
func (e *Exporter) RunExport(ctx context.Context, outputRoot string) bool {
	_, err := e.Run(ctx, outputRoot)
	return err == nil
}

// Run performs one full export pass into outputRoot. The returned Result is
// non-nil even on error and holds whatever the run accomplished.
func (e *Exporter) Run(ctx context.Context, outputRoot string) (*Result, error) {
	res := &Result{
		RunID:     uuid.New().String(),
		StartedAt: e.now(),
	}
	logger := e.logger.With("run_id", res.RunID)
	m := metrics.NewRun()
	l := ledger.New()

	defer func() {
		finished := e.now()
		res.Duration = finished.Sub(res.StartedAt)
		if res.Stats.Succeeded == nil {
			res.Stats = strategies.StatsFromSnapshot(l.Snapshot(), len(res.Resolution.Set))
		}
		logSummary(logger, res)
		e.writeMetrics(logger, m, l.Snapshot(), res, finished)
	}()

	root, err := prepareRoot(outputRoot)
	if err != nil {
		logger.Error("export aborted", "error", err)
		return res, fmt.Errorf("%w; %w", ErrRunFailure, err)
	}
	res.OutputRoot = root
	logger.Info("export started", "output_root", root)

	resolver := selection.NewResolver(e.host, selection.WithLogger(logger))
	resolution, err := resolver.ResolveCurrent(ctx, e.source)
	if err != nil {
		logger.Error("export aborted", "error", err)
		return res, fmt.Errorf("%w; %w", ErrRunFailure, err)
	}
	res.Resolution = resolution

	if resolution.Empty() {
		logger.Warn("no assets selected for export")
		return res, nil
	}

	dispatcher := strategies.NewDispatcher(e.host, append([]strategies.Option{strategies.WithLogger(logger)}, e.strategyOpts...)...)
	if skeleton := e.lookupSkeleton(ctx, logger); skeleton != nil {
		dispatcher = dispatcher.WithAnimationSkeleton(skeleton)
	}

	res.Stats = dispatcher.DispatchAll(ctx, resolution.Set, root, l)

	writer := report.NewWriter(
		report.WithLogger(logger),
		report.WithClock(e.now),
		report.WithRunID(res.RunID),
		report.WithGenerator(e.generator),
	)
	path, err := writer.Write(l.Snapshot(), root)
	if err != nil {
		logger.Error("failed to write manifest", "error", err)
		return res, fmt.Errorf("%w; %w", ErrRunFailure, err)
	}
	res.ManifestPath = path

	return res, nil
}

// prepareRoot makes outputRoot absolute and ensures it exists.
func prepareRoot(outputRoot string) (string, error) {
	if strings.TrimSpace(outputRoot) == "" {
		return "", errors.New("output root is empty")
	}

	root, err := filepath.Abs(outputRoot)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output root; %w", err)
	}
	if err := fsutil.EnsureDir(root); err != nil {
		return "", fmt.Errorf("failed to create output root; %w", err)
	}
	return root, nil
}

// lookupSkeleton resolves the configured animation skeleton. A skeleton that
// cannot be used is a warning and animations keep their default binding.
func (e *Exporter) lookupSkeleton(ctx context.Context, logger *slog.Logger) *asset.Handle {
	if e.skeleton == "" {
		return nil
	}

	h, err := e.host.LookupAsset(ctx, e.skeleton)
	if err != nil {
		logger.Warn("failed to load animation skeleton; using default bindings", "skeleton", e.skeleton, "error", err)
		return nil
	}
	if h.Kind != asset.KindSkeletalMesh {
		logger.Warn("animation skeleton is not a skeletal mesh; using default bindings", "skeleton", e.skeleton, "kind", h.Kind.String())
		return nil
	}
	return &h
}

func (e *Exporter) writeMetrics(logger *slog.Logger, m *metrics.Run, snap ledger.Snapshot, res *Result, finished time.Time) {
	m.ObserveSelection(len(res.Resolution.Set), len(res.Resolution.SkippedFolders))
	m.ObserveLedger(snap)
	m.Finish(res.StartedAt, finished)

	if e.metricsTextfile == "" {
		return
	}
	if err := m.WriteTextfile(e.metricsTextfile); err != nil {
		logger.Warn("failed to write run metrics", "path", e.metricsTextfile, "error", err)
	}
}

func logSummary(logger *slog.Logger, res *Result) {
	for _, k := range asset.Kinds {
		logger.Info("export summary",
			"kind", k.String(),
			"exported", res.Stats.Succeeded[k],
			"failed", res.Stats.Failed[k],
		)
	}
	logger.Info("export finished",
		"resolved", len(res.Resolution.Set),
		"exported", res.Stats.TotalSucceeded(),
		"failed", res.Stats.TotalFailed(),
		"unsupported", res.Stats.Unsupported,
		"skipped_folders", len(res.Resolution.SkippedFolders),
		"manifest", res.ManifestPath,
		"duration", res.Duration,
	)
}
