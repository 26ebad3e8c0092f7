package parser

import (
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/marcoscrape/molduras/internal/config"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

const testHTML = `<!DOCTYPE html>
<html>
<head>
	<meta property="og:image" content="https://example.com/cover.jpg">
</head>
<body>
	<h1 class="product_title">Moldura	 Roble
		2.5 cm</h1>
	<ul class="products">
		<li class="product"><a class="woocommerce-LoopProduct-link" href="/producto/a/">A</a></li>
		<li class="product"><a class="woocommerce-LoopProduct-link" href="/producto/b/">B</a></li>
	</ul>
	<a class="next" href="/categoria/page/2/">Siguiente</a>
</body>
</html>`

func makeDoc(t *testing.T) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(testHTML))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestExtractCSSText(t *testing.T) {
	e := NewEvaluator(testLogger)
	doc := makeDoc(t)

	vals := e.Extract(doc, config.Rule{Type: "css", Selector: "h1.product_title"})
	if len(vals) != 1 {
		t.Fatalf("expected 1 value, got %d", len(vals))
	}
	if vals[0] != "Moldura Roble 2.5 cm" {
		t.Errorf("whitespace not collapsed: %q", vals[0])
	}
}

func TestExtractCSSAttribute(t *testing.T) {
	e := NewEvaluator(testLogger)
	doc := makeDoc(t)

	vals := e.Extract(doc, config.Rule{
		Type:      "css",
		Selector:  `meta[property="og:image"]`,
		Attribute: "content",
	})
	if len(vals) != 1 || vals[0] != "https://example.com/cover.jpg" {
		t.Errorf("og:image attribute: got %v", vals)
	}
}

func TestExtractXPath(t *testing.T) {
	e := NewEvaluator(testLogger)
	doc := makeDoc(t)

	vals := e.Extract(doc, config.Rule{
		Type:      "xpath",
		Selector:  `//a[@class="next"]`,
		Attribute: "href",
	})
	if len(vals) != 1 || vals[0] != "/categoria/page/2/" {
		t.Errorf("xpath attribute: got %v", vals)
	}

	vals = e.Extract(doc, config.Rule{Type: "xpath", Selector: `//h1`})
	if len(vals) != 1 || vals[0] != "Moldura Roble 2.5 cm" {
		t.Errorf("xpath text: got %v", vals)
	}
}

func TestFirstRespectsChainOrder(t *testing.T) {
	e := NewEvaluator(testLogger)
	doc := makeDoc(t)

	got := e.First(doc, []config.Rule{
		{Type: "css", Selector: "h2.missing"},
		{Type: "css", Selector: "h1.product_title"},
	})
	if got != "Moldura Roble 2.5 cm" {
		t.Errorf("First: got %q", got)
	}

	if got := e.First(doc, []config.Rule{{Type: "css", Selector: ".nope"}}); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestAllCollectsAcrossRules(t *testing.T) {
	e := NewEvaluator(testLogger)
	doc := makeDoc(t)

	vals := e.All(doc, []config.Rule{
		{Type: "css", Selector: "ul.products li.product a.woocommerce-LoopProduct-link", Attribute: "href"},
		{Type: "css", Selector: `a[href*="/producto/"]`, Attribute: "href"},
	})
	// Both rules match the same two anchors; All keeps duplicates.
	if len(vals) != 4 {
		t.Fatalf("expected 4 values, got %d: %v", len(vals), vals)
	}
	if vals[0] != "/producto/a/" || vals[1] != "/producto/b/" {
		t.Errorf("order: got %v", vals)
	}
}
