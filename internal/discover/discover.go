// Package discover walks a paginated category listing and collects the
// product-page URLs it links to.
package discover

import (
	"context"
	"log/slog"
	"net/url"
	"sort"
	"time"

	"github.com/marcoscrape/molduras/internal/config"
	"github.com/marcoscrape/molduras/internal/fetcher"
	"github.com/marcoscrape/molduras/internal/parser"
	"github.com/marcoscrape/molduras/internal/types"
)

// Walker paginates category listings. Failures propagate: a listing page
// that cannot be fetched or parsed aborts discovery for that category.
type Walker struct {
	fetcher   fetcher.Fetcher
	eval      *parser.Evaluator
	linkRules []config.Rule
	nextRules []config.Rule
	base      *url.URL
	pageDelay time.Duration
	logger    *slog.Logger
}

// New creates a Walker for the configured site.
func New(cfg *config.Config, f fetcher.Fetcher, logger *slog.Logger) (*Walker, error) {
	base, err := url.Parse(cfg.Site.BaseURL)
	if err != nil {
		return nil, err
	}

	return &Walker{
		fetcher:   f,
		eval:      parser.NewEvaluator(logger),
		linkRules: cfg.Selectors.ProductLinks,
		nextRules: cfg.Selectors.NextPage,
		base:      base,
		pageDelay: cfg.Crawl.PageDelay,
		logger:    logger.With("component", "discover"),
	}, nil
}

// Discover follows the category's pagination chain and returns the
// deduplicated, sorted product URLs found across all pages.
func (w *Walker) Discover(ctx context.Context, categoryURL string) ([]string, error) {
	seen := make(map[string]struct{})
	pageURL := categoryURL

	for pageURL != "" {
		req, err := types.NewRequest(pageURL)
		if err != nil {
			return nil, err
		}
		req.Tag = "listing"

		resp, err := w.fetcher.Fetch(ctx, req)
		if err != nil {
			return nil, err
		}

		doc, err := resp.Document()
		if err != nil {
			return nil, err
		}

		found := 0
		for _, href := range w.eval.All(doc, w.linkRules) {
			abs := w.resolve(href)
			if abs == "" {
				continue
			}
			if _, ok := seen[abs]; !ok {
				seen[abs] = struct{}{}
				found++
			}
		}

		next := ""
		if href := w.eval.First(doc, w.nextRules); href != "" {
			next = w.resolve(href)
		}

		w.logger.Debug("listing page walked",
			"url", pageURL,
			"new_links", found,
			"total", len(seen),
			"next", next != "",
		)

		pageURL = next
		if pageURL != "" && w.pageDelay > 0 {
			select {
			case <-time.After(w.pageDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	links := make([]string, 0, len(seen))
	for u := range seen {
		links = append(links, u)
	}
	sort.Strings(links)

	return links, nil
}

// resolve makes an href absolute against the site base URL.
func (w *Walker) resolve(href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	u := w.base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	u.Fragment = ""
	return u.String()
}
