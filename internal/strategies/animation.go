package strategies

import (
	"context"

	"github.com/leefowlercu/assetbridge/internal/asset"
	"github.com/leefowlercu/assetbridge/internal/host"
	"github.com/leefowlercu/assetbridge/internal/ledger"
)

// AnimationStrategy exports animation sequences, optionally bound to a skeletal mesh.
type AnimationStrategy struct {
	s        *settings
	skeleton *asset.Handle
}

// NewAnimationStrategy creates an AnimationStrategy writing through w.
func NewAnimationStrategy(w host.Writer, opts ...Option) *AnimationStrategy {
	return &AnimationStrategy{s: newSettings(w, opts...)}
}

// WithSkeleton returns a copy of the strategy that exports against skeleton.
// A nil skeleton restores each animation's default binding.
func (st *AnimationStrategy) WithSkeleton(skeleton *asset.Handle) *AnimationStrategy {
	cp := *st
	cp.skeleton = skeleton
	return &cp
}

// Kind returns KindAnimation.
func (st *AnimationStrategy) Kind() asset.Kind {
	return asset.KindAnimation
}

// Export writes ANIM_<name>.<ext>. Identical existing files are not replaced.
func (st *AnimationStrategy) Export(ctx context.Context, a asset.Handle, outputRoot string, rec ledger.Recorder) Outcome {
	opts := host.ExportOptions{
		Automated: true,
		Skeleton:  st.skeleton,
	}
	if st.skeleton != nil {
		st.s.logger.Debug("binding animation to skeleton", "asset", a.DisplayName, "skeleton", st.skeleton.DisplayName)
	}
	return st.s.exportSingle(ctx, asset.KindAnimation, a, outputRoot, opts, rec)
}
