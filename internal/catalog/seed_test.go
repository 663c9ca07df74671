package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const testSeed = `assets:
  - class: Texture2D
    name: Oak
    folder: Textures
    source: src/oak.png
  - class: Material
    name: Wood
    folder: Materials
    source: /abs/wood.mat
    textures:
      - parameter: BaseColor
        texture: /Game/Textures/Oak.Oak
      - parameter: Normal
  - identity: /Game/Chars/Hero.Hero
    class: SkeletalMesh
    source: src/hero.fbx
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write seed: %v", err)
	}
	return path
}

func TestLoadSeed(t *testing.T) {
	path := writeSeed(t, testSeed)

	seed, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("LoadSeed error = %v", err)
	}
	if len(seed.Assets) != 3 {
		t.Fatalf("assets = %d, want 3", len(seed.Assets))
	}

	wantOak := filepath.Join(filepath.Dir(path), "src", "oak.png")
	if seed.Assets[0].Source != wantOak {
		t.Errorf("relative source = %q, want %q", seed.Assets[0].Source, wantOak)
	}
	if seed.Assets[1].Source != "/abs/wood.mat" {
		t.Errorf("absolute source changed to %q", seed.Assets[1].Source)
	}
	if len(seed.Assets[1].Textures) != 2 || seed.Assets[1].Textures[1].Texture != "" {
		t.Errorf("unexpected textures %+v", seed.Assets[1].Textures)
	}
}

func TestLoadSeed_Errors(t *testing.T) {
	if _, err := LoadSeed(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing seed")
	}
	if _, err := LoadSeed(writeSeed(t, "assets: [")); err == nil {
		t.Error("expected error for malformed seed")
	}
}

func TestImportSeed(t *testing.T) {
	c := newTestCatalog(t)
	ctx := context.Background()

	seed, err := LoadSeed(writeSeed(t, testSeed))
	if err != nil {
		t.Fatalf("LoadSeed error = %v", err)
	}

	result, err := c.ImportSeed(ctx, seed)
	if err != nil {
		t.Fatalf("ImportSeed error = %v", err)
	}
	if result.Assets != 3 || result.Parameters != 2 {
		t.Errorf("result = %+v, want 3 assets and 2 parameters", result)
	}

	// Re-import is idempotent.
	if _, err := c.ImportSeed(ctx, seed); err != nil {
		t.Fatalf("second ImportSeed error = %v", err)
	}

	entries, err := c.ListAssets(ctx, "")
	if err != nil {
		t.Fatalf("ListAssets error = %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("entries = %d, want 3", len(entries))
	}

	hero, err := c.GetAsset(ctx, "/Game/Chars/Hero.Hero")
	if err != nil {
		t.Fatalf("GetAsset error = %v", err)
	}
	if hero.DisplayName != "Hero" || hero.Folder != "/Game/Chars" {
		t.Errorf("unexpected hero %+v", hero)
	}

	params, err := c.TextureParameters(ctx, "/Game/Materials/Wood.Wood")
	if err != nil {
		t.Fatalf("TextureParameters error = %v", err)
	}
	if len(params) != 2 || params[0].Parameter != "BaseColor" || params[1].Ordinal != 1 {
		t.Errorf("unexpected parameters %+v", params)
	}
}

func TestImportSeed_InvalidRollsBack(t *testing.T) {
	c := newTestCatalog(t)
	ctx := context.Background()

	seed := Seed{Assets: []SeedAsset{
		{Class: "StaticMesh", Name: "Chair", Folder: "Props"},
		{Name: "NoClass", Folder: "Props"},
	}}

	if _, err := c.ImportSeed(ctx, seed); err == nil {
		t.Fatal("expected error for asset without class")
	}

	entries, err := c.ListAssets(ctx, "")
	if err != nil {
		t.Fatalf("ListAssets error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("failed import left %d rows", len(entries))
	}
}
