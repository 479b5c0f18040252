package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the top-level configuration for the arbd daemon.
type Config struct {
	RPCURL        string `yaml:"rpc_url"`
	BufferSize    uint   `yaml:"buffer_size"`
	MaxCycleDepth int    `yaml:"max_cycle_depth"`
	MetricsAddr   string `yaml:"metrics_addr"`

	// BootstrapPath, if set, points at a JSON snapshot of catalogue.Pool
	// records used to seed the initial World. Populating this file is the
	// job of a separate bulk-discovery service; arbd only consumes it.
	BootstrapPath string `yaml:"bootstrap_path"`
}

func (c *Config) setDefaults() {
	if c.BufferSize == 0 {
		c.BufferSize = 16
	}
	if c.MaxCycleDepth == 0 {
		c.MaxCycleDepth = 3
	}
	if c.MetricsAddr == "" {
		c.MetricsAddr = ":9090"
	}
}

func (c *Config) validate() error {
	if c.RPCURL == "" {
		return fmt.Errorf("config: rpc_url is required")
	}
	return nil
}

// LoadConfig reads and parses a YAML configuration file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
