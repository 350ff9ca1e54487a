package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadFile reads and parses the configuration from a YAML file, applies
// defaults and environment overrides, and validates the result.
func LoadFile(path string) (*Config, error) {
	// #nosec G304 - path is operator-supplied input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg Config
	if err := mapstructure.Decode(rawConfig, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return finalize(&cfg)
}

// Load resolves the configuration for a run. An empty path falls back
// to matchframe.yaml in the current directory; if that does not exist
// either, the built-in defaults are used so that a bare `matchframe up`
// works out of the box.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return LoadFile(DefaultFile)
	}
	return finalize(&Config{})
}

// finalize applies defaults, environment overrides, and validation.
func finalize(cfg *Config) (*Config, error) {
	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteStarter writes a commented starter configuration to path.
// It refuses to overwrite an existing file.
func WriteStarter(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists, not overwriting", path)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := "# matchframe configuration\n# Region and key name can be overridden with AWS_REGION and KEY_NAME.\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
