// Package cmdutil holds helpers shared by command implementations.
package cmdutil

import (
	"path/filepath"
	"strings"

	"github.com/leefowlercu/assetbridge/internal/config"
)

// ResolvePath expands "~" and returns an absolute, cleaned path.
// Empty input returns an empty string.
func ResolvePath(path string) (string, error) {
	expanded := config.ExpandPath(strings.TrimSpace(path))
	if expanded == "" {
		return "", nil
	}

	absPath, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}

	return filepath.Clean(absPath), nil
}
