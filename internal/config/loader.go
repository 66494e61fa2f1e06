package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const sagaFile = "saga.yaml"

// LoadSaga loads the saga configuration.
// Search order: customPath -> $XDG_CONFIG_HOME/saga/saga.yaml -> ./configs/saga.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides
// the keys it sets.
func LoadSaga(customPath string) (SagaConfig, error) {
	cfg := DefaultSagaConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then the local configs directory
	for _, p := range []string{UserConfigPath(), filepath.Join("configs", sagaFile)} {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		candidate := DefaultSagaConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil && candidate.Validate() == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSagaYAML, &cfg); err != nil {
		return DefaultSagaConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// UserConfigPath returns the per-user config file location.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "saga", sagaFile)
}

// RecordsPath returns the records database path: the configured path, or
// a file under the XDG data directory.
func (c SagaConfig) RecordsPath() string {
	if c.Records.Path != "" {
		return c.Records.Path
	}
	return filepath.Join(xdg.DataHome, "saga", "records.db")
}

// LogPath returns the default debug log location under the XDG state
// directory.
func LogPath() string {
	return filepath.Join(xdg.StateHome, "saga", "saga.log")
}

// HostKeyPath returns where the SSH server keeps its host key.
func HostKeyPath() string {
	return filepath.Join(xdg.DataHome, "saga", "host_key")
}
