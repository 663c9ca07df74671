package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Current returns the typed, validated configuration from the state set up by Init.
func Current() (*Config, error) {
	return unmarshalConfig(viper.GetViper())
}

// LoadFromPath reads configuration from a specific file path.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	configure(v)
	v.SetConfigFile(ExpandPath(path))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config from %s; %w", path, err)
	}

	return unmarshalConfig(v)
}

// unmarshalConfig converts viper config to typed Config struct.
func unmarshalConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config; %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
