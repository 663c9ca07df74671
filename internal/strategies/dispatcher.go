package strategies

import (
	"context"
	"log/slog"

	"github.com/leefowlercu/assetbridge/internal/asset"
	"github.com/leefowlercu/assetbridge/internal/host"
	"github.com/leefowlercu/assetbridge/internal/ledger"
)

// Stats summarizes one dispatch pass. Succeeded is read back from the ledger.
type Stats struct {
	Processed   int
	Succeeded   map[asset.Kind]int
	Failed      map[asset.Kind]int
	Unsupported int
}

// TotalSucceeded returns the number of records across all kinds.
func (s Stats) TotalSucceeded() int {
	n := 0
	for _, c := range s.Succeeded {
		n += c
	}
	return n
}

// TotalFailed returns the number of failed exports across all kinds.
func (s Stats) TotalFailed() int {
	n := 0
	for _, c := range s.Failed {
		n += c
	}
	return n
}

// StatsFromSnapshot builds Stats from a ledger snapshot.
func StatsFromSnapshot(snap ledger.Snapshot, processed int) Stats {
	return Stats{
		Processed:   processed,
		Succeeded:   snap.Counts,
		Failed:      snap.Failed,
		Unsupported: snap.Unsupported,
	}
}

// Dispatcher routes each asset to the single strategy of its kind.
type Dispatcher struct {
	staticMesh   Strategy
	skeletalMesh Strategy
	animation    Strategy
	material     Strategy
	texture      Strategy
	logger       *slog.Logger
}

// Host is the part of the host the strategies write through.
type Host interface {
	host.Writer
	host.MaterialIntrospector
}

// NewDispatcher builds the fixed strategy set over one host.
func NewDispatcher(h Host, opts ...Option) *Dispatcher {
	textures := NewTextureStrategy(h, opts...)
	s := newSettings(h, opts...)

	return &Dispatcher{
		staticMesh:   NewStaticMeshStrategy(h, opts...),
		skeletalMesh: NewSkeletalMeshStrategy(h, opts...),
		animation:    NewAnimationStrategy(h, opts...),
		material:     NewMaterialStrategy(h, textures, opts...),
		texture:      textures,
		logger:       s.logger,
	}
}

// WithAnimationSkeleton binds every animation export of the dispatcher to skeleton.
func (d *Dispatcher) WithAnimationSkeleton(skeleton *asset.Handle) *Dispatcher {
	cp := *d
	if anim, ok := d.animation.(*AnimationStrategy); ok {
		cp.animation = anim.WithSkeleton(skeleton)
	}
	return &cp
}

// StrategyFor returns the strategy for kind. The mapping is total over
// asset.Kinds; every other kind reports false.
func (d *Dispatcher) StrategyFor(kind asset.Kind) (Strategy, bool) {
	switch kind {
	case asset.KindStaticMesh:
		return d.staticMesh, true
	case asset.KindSkeletalMesh:
		return d.skeletalMesh, true
	case asset.KindAnimation:
		return d.animation, true
	case asset.KindMaterial:
		return d.material, true
	case asset.KindTexture:
		return d.texture, true
	default:
		return nil, false
	}
}

// Dispatch exports one asset into l.
func (d *Dispatcher) Dispatch(ctx context.Context, a asset.Handle, outputRoot string, l *ledger.Ledger) Outcome {
	strategy, ok := d.StrategyFor(a.Kind)
	if !ok {
		d.logger.Warn("unsupported asset type", "class", a.ClassName, "asset", a.DisplayName)
		l.IncrementUnsupported()
		return Outcome{}
	}

	out := strategy.Export(ctx, a, outputRoot, l)
	if !out.OK() {
		l.IncrementFailed(a.Kind)
	}
	return out
}

// DispatchAll exports every asset in order. One asset's failure never stops the batch.
func (d *Dispatcher) DispatchAll(ctx context.Context, assets []asset.Handle, outputRoot string, l *ledger.Ledger) Stats {
	for _, a := range assets {
		d.Dispatch(ctx, a, outputRoot, l)
	}
	return StatsFromSnapshot(l.Snapshot(), len(assets))
}
