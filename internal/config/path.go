package config

import (
	"os"
	"path/filepath"
)

// DefaultConfigPath returns the default path for the config file.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ConfigDir returns the config directory: ASSETBRIDGE_CONFIG_DIR when set,
// else ~/.config/assetbridge.
func ConfigDir() string {
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "assetbridge")
}

// ConfigExists returns true if the config file exists at the default path.
func ConfigExists() bool {
	_, err := os.Stat(DefaultConfigPath())
	return err == nil
}
