// Package extract turns a fetched product page into a Record.
//
// Every field follows a fixed fallback order: title selector chain then
// URL slug; SKU element then slug; og:image meta then gallery image then
// featured image. Reordering any chain changes observable output.
package extract

import (
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/marcoscrape/molduras/internal/config"
	"github.com/marcoscrape/molduras/internal/parser"
	"github.com/marcoscrape/molduras/internal/types"
)

var idInvalidChars = regexp.MustCompile(`[^A-Z0-9_-]+`)

// Result holds an extracted record plus the remote image URL still to be
// downloaded. Record.Image stays nil until the download succeeds.
type Result struct {
	Record   *types.Record
	ImageURL string
}

// Extractor builds Records from product pages.
type Extractor struct {
	rules  *config.SelectorsConfig
	base   *url.URL
	eval   *parser.Evaluator
	logger *slog.Logger
}

// New creates an Extractor for the given site.
func New(cfg *config.Config, logger *slog.Logger) (*Extractor, error) {
	base, err := url.Parse(cfg.Site.BaseURL)
	if err != nil {
		return nil, err
	}

	return &Extractor{
		rules:  &cfg.Selectors,
		base:   base,
		eval:   parser.NewEvaluator(logger),
		logger: logger.With("component", "extractor"),
	}, nil
}

// Extract parses a product page response into a Result.
func (e *Extractor) Extract(resp *types.Response) (*Result, error) {
	doc, err := resp.Document()
	if err != nil {
		return nil, err
	}

	pageURL := resp.Request.URLString()

	title := e.eval.First(doc, e.rules.Title)
	if title == "" {
		title = SlugFromURL(pageURL)
	}

	id := SanitizeID(e.eval.First(doc, e.rules.SKU))
	if id == "" {
		id = SanitizeID(SlugFromURL(pageURL))
	}
	if id == "" {
		return nil, &types.ParseError{URL: pageURL, Err: types.ErrEmptyID}
	}

	imageURL := ""
	if raw := e.eval.First(doc, e.rules.Image); raw != "" {
		imageURL = e.resolve(raw)
	}

	rec := &types.Record{
		ID:      id,
		Name:    title,
		WidthCM: ParseWidthCM(title),
		Color:   GuessColor(title),
		Style:   GuessStyle(title),
	}

	return &Result{Record: rec, ImageURL: imageURL}, nil
}

// resolve makes a possibly-relative URL absolute against the site base.
func (e *Extractor) resolve(raw string) string {
	ref, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return e.base.ResolveReference(ref).String()
}

// SlugFromURL derives an identifier from the last path segment of a
// product URL, uppercased with hyphens replaced by underscores.
func SlugFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "PRODUCTO"
	}

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	last := segs[len(segs)-1]
	if last == "" {
		last = "producto"
	}
	return strings.ReplaceAll(strings.ToUpper(last), "-", "_")
}

// SanitizeID uppercases the input and strips every character outside
// [A-Z0-9_-]. An all-invalid input yields the empty string.
func SanitizeID(text string) string {
	text = strings.ToUpper(strings.TrimSpace(text))
	return idInvalidChars.ReplaceAllString(text, "")
}
