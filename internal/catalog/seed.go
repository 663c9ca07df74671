package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Seed is the YAML document the catalog is populated from.
//
//	assets:
//	  - class: StaticMesh
//	    name: Chair
//	    folder: Props
//	    source: sources/chair.fbx
//	  - class: Material
//	    name: Wood
//	    folder: Materials
//	    source: sources/wood.mat
//	    textures:
//	      - parameter: BaseColor
//	        texture: /Game/Textures/Oak.Oak
type Seed struct {
	Assets []SeedAsset `yaml:"assets"`
}

// SeedAsset is one asset of a seed document.
type SeedAsset struct {
	Identity string        `yaml:"identity,omitempty"`
	Class    string        `yaml:"class"`
	Name     string        `yaml:"name,omitempty"`
	Folder   string        `yaml:"folder,omitempty"`
	Source   string        `yaml:"source,omitempty"`
	Skeleton string        `yaml:"skeleton,omitempty"`
	Textures []SeedTexture `yaml:"textures,omitempty"`
}

// SeedTexture binds a material parameter to a texture identity.
type SeedTexture struct {
	Parameter string `yaml:"parameter"`
	Texture   string `yaml:"texture,omitempty"`
}

// ImportResult counts the rows written by ImportSeed.
type ImportResult struct {
	Assets     int
	Parameters int
}

// LoadSeed reads a seed file. Relative sources are resolved against the
// seed file's directory.
func LoadSeed(path string) (Seed, error) {
	var seed Seed

	data, err := os.ReadFile(path)
	if err != nil {
		return seed, fmt.Errorf("failed to read seed file; %w", err)
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return seed, fmt.Errorf("failed to parse seed file %s; %w", path, err)
	}

	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return seed, fmt.Errorf("failed to resolve seed directory; %w", err)
	}
	for i := range seed.Assets {
		src := seed.Assets[i].Source
		if src != "" && !filepath.IsAbs(src) {
			seed.Assets[i].Source = filepath.Join(base, src)
		}
	}

	return seed, nil
}

// ImportSeed inserts or updates every asset of the seed and its texture
// bindings in one transaction. Re-importing a seed is idempotent.
func (c *Catalog) ImportSeed(ctx context.Context, seed Seed) (ImportResult, error) {
	var result ImportResult

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("failed to begin transaction; %w", err)
	}
	defer tx.Rollback()

	for i, sa := range seed.Assets {
		e := Entry{
			Identity:    sa.Identity,
			ClassName:   sa.Class,
			DisplayName: sa.Name,
			Folder:      sa.Folder,
			SourcePath:  sa.Source,
			Skeleton:    sa.Skeleton,
		}
		e.normalize(c.contentRoot)
		if err := validateEntry(e); err != nil {
			return result, fmt.Errorf("invalid seed asset %d; %w", i, err)
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO assets (identity, class_name, display_name, folder, source_path, skeleton, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
			 ON CONFLICT(identity) DO UPDATE SET
				class_name = excluded.class_name,
				display_name = excluded.display_name,
				folder = excluded.folder,
				source_path = excluded.source_path,
				skeleton = excluded.skeleton,
				updated_at = CURRENT_TIMESTAMP`,
			e.Identity, e.ClassName, e.DisplayName, e.Folder, e.SourcePath, e.Skeleton,
		)
		if err != nil {
			return result, fmt.Errorf("failed to import asset %s; %w", e.Identity, err)
		}
		result.Assets++

		if len(sa.Textures) == 0 {
			continue
		}

		// Seeded bindings replace the material's existing ones so ordinals follow the seed.
		if _, err := tx.ExecContext(ctx, "DELETE FROM texture_parameters WHERE material = ?", e.Identity); err != nil {
			return result, fmt.Errorf("failed to clear texture parameters of %s; %w", e.Identity, err)
		}
		for ordinal, st := range sa.Textures {
			if st.Parameter == "" {
				return result, fmt.Errorf("material %s has a texture binding without a parameter", e.Identity)
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO texture_parameters (material, parameter, texture, ordinal) VALUES (?, ?, ?, ?)",
				e.Identity, st.Parameter, st.Texture, ordinal,
			); err != nil {
				return result, fmt.Errorf("failed to import parameter %s of %s; %w", st.Parameter, e.Identity, err)
			}
			result.Parameters++
		}
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("failed to commit transaction; %w", err)
	}

	c.logger.Info("catalog seed imported", "assets", result.Assets, "parameters", result.Parameters)
	return result, nil
}
