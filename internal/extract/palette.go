package extract

import (
	"strings"

	"github.com/marcoscrape/molduras/internal/types"
)

// DefaultColor is used when no keyword in the table matches the name.
const DefaultColor = "#555555"

// colorTable maps name keywords to hex colors. Order matters: the first
// keyword found in the name wins.
var colorTable = []struct {
	keyword string
	hex     string
}{
	{"negro", "#111111"},
	{"blanco", "#f5f5f5"},
	{"nogal", "#6b3f21"},
	{"caoba", "#7a3b1f"},
	{"chocolate", "#4b2b1a"},
	{"natural", "#c9b18c"},
	{"maple", "#e0b977"},
	{"wengue", "#3a2a1a"},
	{"roble", "#916c44"},
	{"azul", "#1f3a5a"},
	{"gris", "#777777"},
	{"plata", "#c0c0c0"},
	{"dorado", "#c7a446"},
	{"oro", "#c7a446"},
	{"bronce", "#8c6b3f"},
	{"marfil", "#f0eee6"},
}

// metallicKeywords force the "metal" style tag regardless of color.
var metallicKeywords = []string{"plata", "dorado", "oro", "bronce", "metal"}

// GuessColor picks a hex color for a product from keywords in its name.
func GuessColor(name string) string {
	t := strings.ToLower(name)
	for _, c := range colorTable {
		if strings.Contains(t, c.keyword) {
			return c.hex
		}
	}
	return DefaultColor
}

// GuessStyle tags a product as grain or metal from keywords in its name.
func GuessStyle(name string) string {
	t := strings.ToLower(name)
	for _, k := range metallicKeywords {
		if strings.Contains(t, k) {
			return types.StyleMetal
		}
	}
	return types.StyleGrain
}
