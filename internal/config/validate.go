package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if err := ValidateURL(cfg.Site.BaseURL); err != nil {
		return fmt.Errorf("site.base_url: %w", err)
	}
	if len(cfg.Site.Categories) == 0 {
		return fmt.Errorf("site.categories must not be empty")
	}
	for _, cat := range cfg.Site.Categories {
		if err := ValidateURL(cat); err != nil {
			return fmt.Errorf("site.categories entry %q: %w", cat, err)
		}
	}

	if cfg.Fetcher.Type != "http" && cfg.Fetcher.Type != "browser" {
		return fmt.Errorf("fetcher.type must be 'http' or 'browser', got %q", cfg.Fetcher.Type)
	}
	if cfg.Fetcher.RequestTimeout <= 0 {
		return fmt.Errorf("fetcher.request_timeout must be > 0")
	}
	if cfg.Fetcher.ImageTimeout <= 0 {
		return fmt.Errorf("fetcher.image_timeout must be > 0")
	}
	if cfg.Fetcher.MaxBodySize <= 0 {
		return fmt.Errorf("fetcher.max_body_size must be > 0")
	}
	if cfg.Fetcher.MaxRedirects < 0 {
		return fmt.Errorf("fetcher.max_redirects must be >= 0")
	}

	if cfg.Crawl.PageDelay < 0 {
		return fmt.Errorf("crawl.page_delay must be >= 0")
	}
	if cfg.Crawl.ProductDelay < 0 {
		return fmt.Errorf("crawl.product_delay must be >= 0")
	}

	for _, chain := range []struct {
		name  string
		rules []Rule
	}{
		{"selectors.product_links", cfg.Selectors.ProductLinks},
		{"selectors.next_page", cfg.Selectors.NextPage},
		{"selectors.title", cfg.Selectors.Title},
		{"selectors.sku", cfg.Selectors.SKU},
		{"selectors.image", cfg.Selectors.Image},
	} {
		if len(chain.rules) == 0 {
			return fmt.Errorf("%s must have at least one rule", chain.name)
		}
		for _, r := range chain.rules {
			if r.Type != "" && r.Type != "css" && r.Type != "xpath" {
				return fmt.Errorf("%s: rule type must be 'css' or 'xpath', got %q", chain.name, r.Type)
			}
			if r.Selector == "" {
				return fmt.Errorf("%s: rule selector must not be empty", chain.name)
			}
		}
	}

	if cfg.Storage.Type != "json" && cfg.Storage.Type != "mongo" {
		return fmt.Errorf("storage.type must be 'json' or 'mongo', got %q", cfg.Storage.Type)
	}
	if cfg.Storage.DataPath == "" {
		return fmt.Errorf("storage.data_path must not be empty")
	}
	if cfg.Storage.ImageDir == "" {
		return fmt.Errorf("storage.image_dir must not be empty")
	}
	if cfg.Storage.Type == "mongo" && cfg.Storage.Mongo.URI == "" {
		return fmt.Errorf("storage.mongo.uri must not be empty")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}

// ValidateURL checks that a URL is usable for crawling.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}
