// Package scraper drives the crawl-extract-download-serialize pipeline.
//
// Stages run strictly in sequence with no parallelism. Error policy is
// two-tier: a failure while walking a category listing aborts the run
// (nothing is flushed), while a failure on a single product or image is
// logged and that item is skipped.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/marcoscrape/molduras/internal/config"
	"github.com/marcoscrape/molduras/internal/discover"
	"github.com/marcoscrape/molduras/internal/extract"
	"github.com/marcoscrape/molduras/internal/fetcher"
	"github.com/marcoscrape/molduras/internal/media"
	"github.com/marcoscrape/molduras/internal/storage"
	"github.com/marcoscrape/molduras/internal/types"
)

// Stats summarizes a completed run.
type Stats struct {
	Categories int
	LinksFound int
	Products   int
	Duplicates int
	Images     int
	ItemErrors int
	Elapsed    time.Duration
}

// Scraper wires the pipeline stages together.
type Scraper struct {
	cfg        *config.Config
	walker     *discover.Walker
	fetcher    fetcher.Fetcher
	extractor  *extract.Extractor
	downloader *media.Downloader
	store      storage.Store
	logger     *slog.Logger
}

// New assembles a Scraper from its stages.
func New(cfg *config.Config, f fetcher.Fetcher, w *discover.Walker, e *extract.Extractor, d *media.Downloader, st storage.Store, logger *slog.Logger) *Scraper {
	return &Scraper{
		cfg:        cfg,
		walker:     w,
		fetcher:    f,
		extractor:  e,
		downloader: d,
		store:      st,
		logger:     logger.With("component", "scraper"),
	}
}

// Run crawls every configured category, aggregates records with
// first-write-wins id deduplication, and flushes them through the store.
func (s *Scraper) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()
	stats := &Stats{}
	col := storage.NewCollection()

	for _, cat := range s.cfg.Site.Categories {
		s.logger.Info("category", "url", cat)
		stats.Categories++

		links, err := s.walker.Discover(ctx, cat)
		if err != nil {
			return nil, fmt.Errorf("discover %s: %w", cat, err)
		}
		stats.LinksFound += len(links)

		for _, productURL := range links {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			if err := s.scrapeProduct(ctx, productURL, col, stats); err != nil {
				// Per-item failures never stop the run.
				s.logger.Error("product skipped", "url", productURL, "error", err)
				stats.ItemErrors++
				continue
			}

			if s.cfg.Crawl.ProductDelay > 0 {
				select {
				case <-time.After(s.cfg.Crawl.ProductDelay):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			}
		}
	}

	if err := s.store.Flush(ctx, col); err != nil {
		return nil, err
	}

	stats.Products = col.Len()
	stats.Elapsed = time.Since(start)

	s.logger.Info("run complete",
		"records", col.Len(),
		"links", stats.LinksFound,
		"duplicates", stats.Duplicates,
		"images", stats.Images,
		"item_errors", stats.ItemErrors,
		"elapsed", stats.Elapsed,
	)

	return stats, nil
}

// scrapeProduct fetches one product page, extracts its record, attempts
// the image download, and inserts the record into the collection.
func (s *Scraper) scrapeProduct(ctx context.Context, productURL string, col *storage.Collection, stats *Stats) error {
	req, err := types.NewRequest(productURL)
	if err != nil {
		return err
	}
	req.Tag = "product"

	resp, err := s.fetcher.Fetch(ctx, req)
	if err != nil {
		return err
	}

	res, err := s.extractor.Extract(resp)
	if err != nil {
		return err
	}
	rec := res.Record

	if col.Has(rec.ID) {
		// First extraction wins; later duplicates are dropped silently.
		s.logger.Debug("duplicate id dropped", "id", rec.ID, "url", productURL)
		stats.Duplicates++
		return nil
	}

	s.logger.Info("product", "id", rec.ID, "name", rec.Name)

	localPath, err := s.downloader.Download(ctx, res.ImageURL, rec.ID)
	if err != nil {
		s.logger.Warn("image download failed", "url", res.ImageURL, "error", err)
	} else {
		rec.SetImage(localPath)
		stats.Images++
	}

	col.Add(rec)
	return nil
}
