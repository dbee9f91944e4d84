package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFile_DefaultsApplied(t *testing.T) {
	// WHAT: Values present in YAML are kept, everything else gets defaults.
	// WHY: Heuristic thresholds are tunable but must never be zero.
	dir := t.TempDir()
	path := filepath.Join(dir, "revq.yaml")
	data := `
target:
  url: https://example.com/shop/someone
  result_limit: 6
heuristics:
  scan_cap: 20
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Target.URL != "https://example.com/shop/someone" {
		t.Errorf("url: got %q", cfg.Target.URL)
	}
	if cfg.Target.ResultLimit != 6 {
		t.Errorf("result_limit: got %d, want 6", cfg.Target.ResultLimit)
	}
	if cfg.Heuristics.ScanCap != 20 {
		t.Errorf("scan_cap: got %d, want 20", cfg.Heuristics.ScanCap)
	}
	if cfg.Heuristics.CardMinLen != 40 || cfg.Heuristics.CardMaxLen != 900 {
		t.Errorf("card window defaults missing: %+v", cfg.Heuristics)
	}
	if cfg.Heuristics.AncestorDepth != 10 || cfg.Heuristics.OverCollect != 3 {
		t.Errorf("heuristic defaults missing: %+v", cfg.Heuristics)
	}
	if cfg.Browser.NavTimeout != 30*time.Second {
		t.Errorf("nav_timeout default: got %v", cfg.Browser.NavTimeout)
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	// WHAT: A missing config file is an error, not an empty config.
	// WHY: Silent fallback to defaults would mask an operator typo.
	if _, err := LoadFile("/nonexistent/revq.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDefault(t *testing.T) {
	// WHAT: Default() yields a fully usable configuration.
	// WHY: The -url one-shot path runs without any file at all.
	cfg := Default()
	if cfg.Target.ResultLimit <= 0 || cfg.Heuristics.MinBodyLen <= 0 {
		t.Errorf("defaults incomplete: %+v", cfg)
	}
}
