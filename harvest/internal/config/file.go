// Package config handles revq configuration from YAML files, with
// defaults applied for everything the file leaves out.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level revq configuration.
type Config struct {
	Target     TargetConfig     `yaml:"target"`
	Browser    BrowserConfig    `yaml:"browser"`
	Heuristics HeuristicsConfig `yaml:"heuristics"`
	Sinks      []SinkConfig     `yaml:"sinks"`
}

// TargetConfig fixes the invocation parameters of one run.
type TargetConfig struct {
	URL         string `yaml:"url"`
	ResultLimit int    `yaml:"result_limit"`
	OutputPath  string `yaml:"output_path"`
}

// BrowserConfig controls the Chrome session.
type BrowserConfig struct {
	Remote           string        `yaml:"remote"`            // external Chrome WebSocket URL; empty = launch local
	Headful          bool          `yaml:"headful"`
	NavTimeout       time.Duration `yaml:"nav_timeout"`
	SettleDelay      time.Duration `yaml:"settle_delay"`      // wait after load before capture closes
	ScrollSteps      int           `yaml:"scroll_steps"`      // lazy-load trigger passes
	ScrollDelay      time.Duration `yaml:"scroll_delay"`
	ResourceBlocking []string      `yaml:"resource_blocking"` // images, fonts, media, stylesheets
}

// HeuristicsConfig exposes the empirically tuned extraction thresholds.
// None of these numbers has a derivation; they match the observed page
// structure and are deliberately overridable.
type HeuristicsConfig struct {
	CardMinLen    int `yaml:"card_min_len"`
	CardMaxLen    int `yaml:"card_max_len"`
	AncestorDepth int `yaml:"ancestor_depth"`
	ScanCap       int `yaml:"scan_cap"`
	MinBodyLen    int `yaml:"min_body_len"`
	OverCollect   int `yaml:"over_collect"` // raw-candidate multiple of the result limit
}

// SinkConfig defines an output backend.
type SinkConfig struct {
	Type string `yaml:"type"` // stdout | file | sqlite
	Path string `yaml:"path"` // for file and sqlite
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero values with the tuned defaults.
func (c *Config) ApplyDefaults() {
	if c.Target.ResultLimit <= 0 {
		c.Target.ResultLimit = 10
	}
	if c.Browser.NavTimeout <= 0 {
		c.Browser.NavTimeout = 30 * time.Second
	}
	if c.Browser.SettleDelay <= 0 {
		c.Browser.SettleDelay = 2 * time.Second
	}
	if c.Browser.ScrollSteps <= 0 {
		c.Browser.ScrollSteps = 6
	}
	if c.Browser.ScrollDelay <= 0 {
		c.Browser.ScrollDelay = 700 * time.Millisecond
	}
	if c.Heuristics.CardMinLen <= 0 {
		c.Heuristics.CardMinLen = 40
	}
	if c.Heuristics.CardMaxLen <= 0 {
		c.Heuristics.CardMaxLen = 900
	}
	if c.Heuristics.AncestorDepth <= 0 {
		c.Heuristics.AncestorDepth = 10
	}
	if c.Heuristics.ScanCap <= 0 {
		c.Heuristics.ScanCap = 60
	}
	if c.Heuristics.MinBodyLen <= 0 {
		c.Heuristics.MinBodyLen = 10
	}
	if c.Heuristics.OverCollect <= 0 {
		c.Heuristics.OverCollect = 3
	}
}
