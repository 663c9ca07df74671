package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_DefaultsWithoutConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ASSETBRIDGE_CONFIG_DIR", dir)
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	Reset()
	t.Cleanup(Reset)

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if got := ConfigFilePath(); got != "" {
		t.Errorf("ConfigFilePath() = %q, want empty", got)
	}
	if got := GetString("export.mesh_extension"); got != DefaultExportMeshExtension {
		t.Errorf("export.mesh_extension = %q, want %q", got, DefaultExportMeshExtension)
	}
	if got := GetString("catalog.content_root"); got != DefaultCatalogContentRoot {
		t.Errorf("catalog.content_root = %q, want %q", got, DefaultCatalogContentRoot)
	}
}

func TestInit_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ASSETBRIDGE_CONFIG_DIR", dir)

	content := "log_level: debug\nexport:\n  output_root: /tmp/out\n  shader_model: Unlit\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	Reset()
	t.Cleanup(Reset)

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if got := ConfigFilePath(); got != filepath.Join(dir, "config.yaml") {
		t.Errorf("ConfigFilePath() = %q, want %q", got, filepath.Join(dir, "config.yaml"))
	}

	cfg, err := Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.Export.OutputRoot != "/tmp/out" {
		t.Errorf("Export.OutputRoot = %q, want %q", cfg.Export.OutputRoot, "/tmp/out")
	}
	if cfg.Export.ShaderModel != "Unlit" {
		t.Errorf("Export.ShaderModel = %q, want %q", cfg.Export.ShaderModel, "Unlit")
	}
	if cfg.Export.DirectTextureSuffix != DefaultExportDirectTextureSuffix {
		t.Errorf("Export.DirectTextureSuffix = %q, want default %q", cfg.Export.DirectTextureSuffix, DefaultExportDirectTextureSuffix)
	}
}

func TestInit_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ASSETBRIDGE_CONFIG_DIR", dir)

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("export: [unclosed"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	Reset()
	t.Cleanup(Reset)

	if err := Init(); err == nil {
		t.Error("Init() expected error for malformed config, got nil")
	}
}

func TestInit_EnvironmentOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ASSETBRIDGE_CONFIG_DIR", t.TempDir())
	t.Setenv("ASSETBRIDGE_EXPORT_MESH_EXTENSION", "obj")
	t.Setenv("ASSETBRIDGE_CATALOG_PATH", "/tmp/catalog.db")

	Reset()
	t.Cleanup(Reset)

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	cfg, err := Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if cfg.Export.MeshExtension != "obj" {
		t.Errorf("Export.MeshExtension = %q, want %q", cfg.Export.MeshExtension, "obj")
	}
	if cfg.Catalog.Path != "/tmp/catalog.db" {
		t.Errorf("Catalog.Path = %q, want %q", cfg.Catalog.Path, "/tmp/catalog.db")
	}
}

func TestSet_OverridesDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ASSETBRIDGE_CONFIG_DIR", t.TempDir())

	Reset()
	t.Cleanup(Reset)

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Set("export.output_root", "/srv/export")
	if got := GetString("export.output_root"); got != "/srv/export" {
		t.Errorf("export.output_root = %q, want %q", got, "/srv/export")
	}
	if _, ok := GetAllSettings()["export"]; !ok {
		t.Error("GetAllSettings() missing export section")
	}
}

func TestGetPath_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ASSETBRIDGE_CONFIG_DIR", t.TempDir())

	Reset()
	t.Cleanup(Reset)

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	want := filepath.Join(home, "AssetBridgeExport")
	if got := GetPath("export.output_root"); got != want {
		t.Errorf("GetPath(export.output_root) = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/a/b", filepath.Join(home, "a", "b")},
		{"~other/x", "~other/x"},
		{"/abs/path", "/abs/path"},
		{"rel/path", "rel/path"},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv("ASSETBRIDGE_CONFIG_DIR", "/custom/dir")
		if got := ConfigDir(); got != "/custom/dir" {
			t.Errorf("ConfigDir() = %q, want %q", got, "/custom/dir")
		}
		if got := DefaultConfigPath(); got != "/custom/dir/config.yaml" {
			t.Errorf("DefaultConfigPath() = %q, want %q", got, "/custom/dir/config.yaml")
		}
	})

	t.Run("home default", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("ASSETBRIDGE_CONFIG_DIR", "")
		want := filepath.Join(home, ".config", "assetbridge")
		if got := ConfigDir(); got != want {
			t.Errorf("ConfigDir() = %q, want %q", got, want)
		}
	})
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "catalog:\n  content_root: /Project\nmetrics:\n  textfile: /tmp/m.prom\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Catalog.ContentRoot != "/Project" {
		t.Errorf("Catalog.ContentRoot = %q, want %q", cfg.Catalog.ContentRoot, "/Project")
	}
	if cfg.Metrics.Textfile != "/tmp/m.prom" {
		t.Errorf("Metrics.Textfile = %q, want %q", cfg.Metrics.Textfile, "/tmp/m.prom")
	}
	if cfg.Export.MeshExtension != DefaultExportMeshExtension {
		t.Errorf("Export.MeshExtension = %q, want default %q", cfg.Export.MeshExtension, DefaultExportMeshExtension)
	}
}

func TestLoadFromPath_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("log_level: verbose\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatal("LoadFromPath() expected validation error, got nil")
	}
	if !IsValidationError(err) {
		t.Errorf("IsValidationError(%v) = false, want true", err)
	}
	if !strings.Contains(err.Error(), "log_level") {
		t.Errorf("error %q does not mention log_level", err.Error())
	}
}

func TestLoadFromPath_Missing(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFromPath() expected error for missing file, got nil")
	}
}

func TestExpandPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := NewDefaultConfig().ExpandPaths()

	if cfg.Catalog.Path != filepath.Join(home, ".config", "assetbridge", "catalog.db") {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	if cfg.Export.OutputRoot != filepath.Join(home, "AssetBridgeExport") {
		t.Errorf("Export.OutputRoot = %q", cfg.Export.OutputRoot)
	}
	if cfg.Metrics.Textfile != "" {
		t.Errorf("Metrics.Textfile = %q, want empty", cfg.Metrics.Textfile)
	}
}
