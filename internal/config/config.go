// Package config loads assetbridge configuration from YAML files and
// ASSETBRIDGE_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every configuration environment variable.
const EnvPrefix = "ASSETBRIDGE"

// configFilePath stores the path to the loaded config file
var configFilePath string

// Init initializes the configuration subsystem.
// It searches for configuration files in priority order:
//  1. Directory specified by ASSETBRIDGE_CONFIG_DIR environment variable
//  2. ~/.config/assetbridge/
//  3. Current working directory (.)
//
// If no config file is found, defaults are used.
// If a config file exists but is invalid or unreadable, Init returns an error.
func Init() error {
	configure(viper.GetViper())

	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			configFilePath = ""
			return nil
		}
		return fmt.Errorf("failed to read config; %w", err)
	}

	configFilePath = viper.ConfigFileUsed()
	slog.Info("config initialized", "file", configFilePath)

	return nil
}

// configure applies names, search paths, env binding and defaults to v.
func configure(v *viper.Viper) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if envPath := os.Getenv(EnvPrefix + "_CONFIG_DIR"); envPath != "" {
		v.AddConfigPath(envPath)
	}
	if home := os.Getenv("HOME"); home != "" {
		v.AddConfigPath(filepath.Join(home, ".config", "assetbridge"))
	}
	v.AddConfigPath(".")
}

// ConfigFilePath returns the path to the loaded config file,
// or empty string if using defaults only.
func ConfigFilePath() string {
	return configFilePath
}

// Reset clears the configuration state for testing purposes.
func Reset() {
	viper.Reset()
	configFilePath = ""
}

// GetString returns the string value for the given key.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetPath returns the string value for the given key with ~ expanded to $HOME.
func GetPath(key string) string {
	return ExpandPath(viper.GetString(key))
}

// Set sets a value for the given key, overriding defaults and config file values.
// Used by command flags and tests.
func Set(key string, value any) {
	viper.Set(key, value)
}

// GetAllSettings returns all configuration settings as a map.
func GetAllSettings() map[string]any {
	return viper.AllSettings()
}

// ExpandPath expands a leading ~ in path to the user's home directory.
// Only "~" alone and "~/..." are expanded.
func ExpandPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return home
	}
	return filepath.Join(home, path[2:])
}
