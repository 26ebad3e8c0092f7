package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no categories", func(c *Config) { c.Site.Categories = nil }},
		{"bad category URL", func(c *Config) { c.Site.Categories = []string{"ftp://x"} }},
		{"bad fetcher type", func(c *Config) { c.Fetcher.Type = "telnet" }},
		{"zero timeout", func(c *Config) { c.Fetcher.RequestTimeout = 0 }},
		{"negative delay", func(c *Config) { c.Crawl.PageDelay = -time.Second }},
		{"bad storage type", func(c *Config) { c.Storage.Type = "csv" }},
		{"empty data path", func(c *Config) { c.Storage.DataPath = "" }},
		{"empty selector chain", func(c *Config) { c.Selectors.Title = nil }},
		{"bad rule type", func(c *Config) { c.Selectors.Title = []Rule{{Type: "regex", Selector: "x"}} }},
		{"empty rule selector", func(c *Config) { c.Selectors.Title = []Rule{{Type: "css"}} }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "molduras.yaml")
	yaml := `
site:
  base_url: https://tienda.example.com/
  categories:
    - https://tienda.example.com/categoria/madera/
crawl:
  page_delay: 250ms
storage:
  data_path: out/records.json
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Site.BaseURL != "https://tienda.example.com/" {
		t.Errorf("base_url: got %q", cfg.Site.BaseURL)
	}
	if len(cfg.Site.Categories) != 1 {
		t.Errorf("categories: got %v", cfg.Site.Categories)
	}
	if cfg.Crawl.PageDelay != 250*time.Millisecond {
		t.Errorf("page_delay: got %v", cfg.Crawl.PageDelay)
	}
	if cfg.Storage.DataPath != "out/records.json" {
		t.Errorf("data_path: got %q", cfg.Storage.DataPath)
	}
	// Untouched sections keep their defaults.
	if cfg.Fetcher.RequestTimeout != 30*time.Second {
		t.Errorf("request_timeout default lost: %v", cfg.Fetcher.RequestTimeout)
	}
	if len(cfg.Selectors.Image) != 4 {
		t.Errorf("image selector chain default lost: %v", cfg.Selectors.Image)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
