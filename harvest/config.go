package harvest

import (
	"github.com/hazyhaar/revq/harvest/internal/config"
)

// Config is the top-level revq configuration. Re-exported from internal.
type Config = config.Config

// TargetConfig fixes the invocation parameters of one run.
type TargetConfig = config.TargetConfig

// BrowserConfig controls the Chrome session.
type BrowserConfig = config.BrowserConfig

// HeuristicsConfig exposes the extraction thresholds.
type HeuristicsConfig = config.HeuristicsConfig

// SinkConfig defines an output backend.
type SinkConfig = config.SinkConfig

// LoadConfigFile reads a YAML configuration file.
func LoadConfigFile(path string) (*Config, error) {
	return config.LoadFile(path)
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	return config.Default()
}
