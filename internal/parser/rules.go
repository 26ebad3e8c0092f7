package parser

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"

	"github.com/marcoscrape/molduras/internal/config"
)

// Evaluator applies extraction rules to parsed HTML documents. CSS rules
// run through goquery, xpath rules through htmlquery.
type Evaluator struct {
	logger *slog.Logger
}

// NewEvaluator creates a rule evaluator.
func NewEvaluator(logger *slog.Logger) *Evaluator {
	return &Evaluator{
		logger: logger.With("component", "rule_evaluator"),
	}
}

// First tries the rules in order and returns the first non-empty value.
func (e *Evaluator) First(doc *goquery.Document, rules []config.Rule) string {
	for _, rule := range rules {
		if vals := e.Extract(doc, rule); len(vals) > 0 {
			return vals[0]
		}
	}
	return ""
}

// All collects values from every rule in the chain, preserving order.
// Duplicates are kept; callers dedup as needed.
func (e *Evaluator) All(doc *goquery.Document, rules []config.Rule) []string {
	var values []string
	for _, rule := range rules {
		values = append(values, e.Extract(doc, rule)...)
	}
	return values
}

// Extract applies a single rule and returns all matched values.
func (e *Evaluator) Extract(doc *goquery.Document, rule config.Rule) []string {
	switch rule.Type {
	case "", "css":
		return e.extractCSS(doc, rule)
	case "xpath":
		return e.extractXPath(doc, rule)
	default:
		e.logger.Warn("unknown rule type", "type", rule.Type, "selector", rule.Selector)
		return nil
	}
}

func (e *Evaluator) extractCSS(doc *goquery.Document, rule config.Rule) []string {
	var values []string

	doc.Find(rule.Selector).Each(func(_ int, sel *goquery.Selection) {
		var val string
		switch rule.Attribute {
		case "", "text":
			val = collapseSpace(sel.Text())
		default:
			val, _ = sel.Attr(rule.Attribute)
			val = strings.TrimSpace(val)
		}
		if val != "" {
			values = append(values, val)
		}
	})

	return values
}

func (e *Evaluator) extractXPath(doc *goquery.Document, rule config.Rule) []string {
	if len(doc.Nodes) == 0 {
		return nil
	}

	nodes, err := htmlquery.QueryAll(doc.Nodes[0], rule.Selector)
	if err != nil {
		e.logger.Warn("invalid xpath", "selector", rule.Selector, "error", err)
		return nil
	}

	var values []string
	for _, node := range nodes {
		var val string
		switch rule.Attribute {
		case "", "text":
			val = collapseSpace(htmlquery.InnerText(node))
		default:
			val = strings.TrimSpace(htmlquery.SelectAttr(node, rule.Attribute))
		}
		if val != "" {
			values = append(values, val)
		}
	}

	return values
}

// collapseSpace trims and collapses runs of whitespace to single spaces,
// matching how titles render in the browser.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
