package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// DefaultConfigFile is the file name looked up in the XDG config directory.
const DefaultConfigFile = "config.yaml"

// DefaultPath returns the config path used when --config is not given.
func DefaultPath() string {
	return filepath.Join(XDGConfigDir(), DefaultConfigFile)
}

// Load reads path over the defaults. YAML is a superset of JSON, so the
// older config.json layout loads unchanged. A missing file returns the
// defaults together with ErrConfigNotFound.
func Load(path string) (*Config, error) {
	cfg := NewConfig()
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, ErrConfigNotFound
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.DBDir == "" {
		cfg.DBDir = XDGDataDir()
	}
	return cfg, nil
}
