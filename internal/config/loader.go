package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"bridge-generator/internal/common"
)

// LoadFile loads and parses a YAML declaration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1"
	}

	if cfg.Output.Package == "" {
		cfg.Output.Package = "bridges"
	}

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "./generated"
	}
}

// validate rejects configs the engine cannot act on.
func validate(cfg *Config) error {
	if common.IsEmpty(cfg.Roots) {
		return fmt.Errorf("config declares no roots")
	}

	for i := range cfg.Roots {
		if _, err := cfg.Roots[i].Identity(); err != nil {
			return fmt.Errorf("root %d: %w", i, err)
		}
	}

	return nil
}
