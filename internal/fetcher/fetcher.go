package fetcher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/marcoscrape/molduras/internal/config"
	"github.com/marcoscrape/molduras/internal/types"
)

// Fetcher retrieves pages for the crawler.
type Fetcher interface {
	// Fetch executes the request and returns the response.
	Fetch(ctx context.Context, req *types.Request) (*types.Response, error)

	// Close releases resources.
	Close() error

	// Type returns the fetcher type identifier.
	Type() string
}

// New creates the fetcher selected by the configuration.
func New(cfg *config.Config, logger *slog.Logger) (Fetcher, error) {
	switch cfg.Fetcher.Type {
	case "http":
		return NewHTTPFetcher(cfg, logger)
	case "browser":
		return NewBrowserFetcher(cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported fetcher type: %s", cfg.Fetcher.Type)
	}
}
