package strategies

import (
	"context"
	"path/filepath"

	"github.com/leefowlercu/assetbridge/internal/asset"
	"github.com/leefowlercu/assetbridge/internal/host"
	"github.com/leefowlercu/assetbridge/internal/ledger"
)

// textureExtension is the raster format every texture is exported to.
const textureExtension = "png"

// TextureStrategy exports textures as PNG images.
//
// The suffix in the filename separates a texture exported on its own from the
// same texture exported as a material dependency, so the two never overwrite
// each other.
type TextureStrategy struct {
	s *settings
}

// NewTextureStrategy creates a TextureStrategy writing through w.
func NewTextureStrategy(w host.Writer, opts ...Option) *TextureStrategy {
	return &TextureStrategy{s: newSettings(w, opts...)}
}

// Kind returns KindTexture.
func (st *TextureStrategy) Kind() asset.Kind {
	return asset.KindTexture
}

// Export writes TEX_<name>_<direct suffix>.png for a directly selected texture.
func (st *TextureStrategy) Export(ctx context.Context, a asset.Handle, outputRoot string, rec ledger.Recorder) Outcome {
	return st.ExportWithSuffix(ctx, a, outputRoot, st.s.directSuffix, rec)
}

// ExportWithSuffix writes TEX_<name>_<suffix>.png.
func (st *TextureStrategy) ExportWithSuffix(ctx context.Context, a asset.Handle, outputRoot, suffix string, rec ledger.Recorder) Outcome {
	outputPath := filepath.Join(outputRoot, ArtifactName(asset.KindTexture, a.DisplayName, suffix, textureExtension))

	opts := host.ExportOptions{Automated: true}
	if err := st.s.write(ctx, a, outputPath, opts); err != nil {
		st.s.logger.Error("texture export failed", "asset", a.DisplayName, "suffix", suffix, "error", err)
		return failed(a, err)
	}

	r := st.s.record(rec, asset.KindTexture, a.DisplayName, outputPath, nil)
	st.s.logger.Info("exported", "kind", asset.KindTexture.String(), "asset", a.DisplayName, "suffix", suffix, "path", r.OutputPath)
	return succeeded(r)
}
