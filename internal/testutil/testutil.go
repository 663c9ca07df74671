// Package testutil provides isolated environments for command tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leefowlercu/assetbridge/internal/config"
)

// TestEnv is an isolated config directory with every assetbridge path
// pointed inside it.
type TestEnv struct {
	t         *testing.T
	ConfigDir string
	OutputDir string
}

// NewTestEnv creates an isolated test environment.
// Paths are overridden through ASSETBRIDGE_* variables so config.Init picks them up.
// Cleanup is automatic via t.Cleanup.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	base := t.TempDir()
	configDir := filepath.Join(base, "config")
	outputDir := filepath.Join(base, "export")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create test config dir: %v", err)
	}

	t.Setenv("HOME", base)
	t.Setenv("ASSETBRIDGE_CONFIG_DIR", configDir)
	t.Setenv("ASSETBRIDGE_LOG_FILE", filepath.Join(configDir, "assetbridge.log"))
	t.Setenv("ASSETBRIDGE_CATALOG_PATH", filepath.Join(configDir, "catalog.db"))
	t.Setenv("ASSETBRIDGE_SELECTION_FILE", filepath.Join(configDir, "selection.yaml"))
	t.Setenv("ASSETBRIDGE_EXPORT_OUTPUT_ROOT", outputDir)

	config.Reset()
	if err := config.Init(); err != nil {
		t.Fatalf("failed to initialize test config: %v", err)
	}

	t.Cleanup(config.Reset)

	return &TestEnv{
		t:         t,
		ConfigDir: configDir,
		OutputDir: outputDir,
	}
}

// CatalogPath returns the path of the test catalog database.
func (e *TestEnv) CatalogPath() string {
	return filepath.Join(e.ConfigDir, "catalog.db")
}

// SelectionPath returns the path of the test selection file.
func (e *TestEnv) SelectionPath() string {
	return filepath.Join(e.ConfigDir, "selection.yaml")
}

// WriteFile writes content to name inside dir and returns the full path.
func (e *TestEnv) WriteFile(dir, name, content string) string {
	e.t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
