package strategies

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/leefowlercu/assetbridge/internal/asset"
	"github.com/leefowlercu/assetbridge/internal/fsutil"
	"github.com/leefowlercu/assetbridge/internal/host"
	"github.com/leefowlercu/assetbridge/internal/ledger"
)

// MaterialStrategy exports a material's textures and a JSON description of it.
type MaterialStrategy struct {
	s            *settings
	introspector host.MaterialIntrospector
	textures     *TextureStrategy
}

// NewMaterialStrategy creates a MaterialStrategy. Referenced textures are exported through textures.
func NewMaterialStrategy(mi host.MaterialIntrospector, textures *TextureStrategy, opts ...Option) *MaterialStrategy {
	return &MaterialStrategy{
		s:            newSettings(textures.s.writer, opts...),
		introspector: mi,
		textures:     textures,
	}
}

// Kind returns KindMaterial.
func (st *MaterialStrategy) Kind() asset.Kind {
	return asset.KindMaterial
}

// MaterialInfo is the content of a MAT_<name>.json metadata file.
type MaterialInfo struct {
	Name        string       `json:"name"`
	Textures    []TextureRef `json:"textures"`
	ShaderModel string       `json:"shader_model"`
	ExportTime  string       `json:"export_time"`
}

// TextureRef maps a material parameter to an exported texture file.
type TextureRef struct {
	Parameter string `json:"parameter"`
	Path      string `json:"path"`
}

// Export exports every resolvable texture parameter, then writes MAT_<name>.json
// and records the material with its textures as dependents.
func (st *MaterialStrategy) Export(ctx context.Context, a asset.Handle, outputRoot string, rec ledger.Recorder) Outcome {
	deps := st.exportTextures(ctx, a, outputRoot, rec)

	info := MaterialInfo{
		Name:        a.DisplayName,
		Textures:    make([]TextureRef, 0, len(deps)),
		ShaderModel: st.s.shaderModel,
		ExportTime:  st.s.now().Format(time.RFC3339),
	}
	for _, d := range deps {
		info.Textures = append(info.Textures, TextureRef{Parameter: d.Label, Path: d.Path})
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		st.s.logger.Error("material export failed", "asset", a.DisplayName, "error", err)
		return failed(a, fmt.Errorf("failed to encode material info; %w", err))
	}

	outputPath := filepath.Join(outputRoot, ArtifactName(asset.KindMaterial, a.DisplayName, "", "json"))
	if err := fsutil.AtomicWriteFile(outputPath, data, 0644); err != nil {
		st.s.logger.Error("material export failed", "asset", a.DisplayName, "error", err)
		return failed(a, err)
	}

	r := st.s.record(rec, asset.KindMaterial, a.DisplayName, outputPath, deps)
	st.s.logger.Info("exported", "kind", asset.KindMaterial.String(), "asset", a.DisplayName, "textures", len(deps), "path", r.OutputPath)
	return succeeded(r)
}

// exportTextures exports the material's texture parameters in declaration order.
// Unresolved or non-texture parameters are soft warnings. A resolved texture
// whose write fails counts as a Texture failure. Either way the material is
// still described with whatever textures did export.
func (st *MaterialStrategy) exportTextures(ctx context.Context, material asset.Handle, outputRoot string, rec ledger.Recorder) []ledger.Artifact {
	params, err := st.introspector.ListTextureParameters(ctx, material)
	if err != nil {
		st.s.logger.Warn("failed to list texture parameters", "asset", material.DisplayName, "error", err)
		return nil
	}

	var deps []ledger.Artifact
	for _, param := range params {
		tex, err := st.introspector.GetTextureParameterValue(ctx, material, param)
		if err != nil {
			st.s.logger.Warn("failed to resolve texture parameter", "asset", material.DisplayName, "parameter", param, "error", err)
			continue
		}
		if tex == nil {
			st.s.logger.Debug("texture parameter has no value", "asset", material.DisplayName, "parameter", param)
			continue
		}
		if tex.Kind != asset.KindTexture {
			st.s.logger.Warn("texture parameter is bound to a non-texture asset; skipping",
				"asset", material.DisplayName, "parameter", param, "bound", tex.Identity, "kind", tex.Kind.String())
			continue
		}

		out := st.textures.ExportWithSuffix(ctx, *tex, outputRoot, st.dependentSuffix(param), rec)
		if !out.OK() {
			rec.IncrementFailed(asset.KindTexture)
			st.s.logger.Warn("material texture skipped", "asset", material.DisplayName, "parameter", param, "error", out.Err)
			continue
		}
		deps = append(deps, ledger.Artifact{Label: param, Path: out.Record.OutputPath})
	}

	return deps
}

// dependentSuffix is the filename suffix of a texture exported for param.
// The direct-selection suffix is reserved, so a parameter sharing its name
// gets a "param_" prefix.
func (st *MaterialStrategy) dependentSuffix(param string) string {
	if strings.EqualFold(sanitizeName(param), sanitizeName(st.textures.s.directSuffix)) {
		return "param_" + param
	}
	return param
}
