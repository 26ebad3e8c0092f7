package types

import "path/filepath"

// Style tags assigned to a moulding based on keywords in its name.
const (
	StyleGrain = "grain"
	StyleMetal = "metal"
)

// Record is a single scraped moulding. Records are built once during
// extraction and never mutated after they are added to a collection.
type Record struct {
	// ID is the sanitized SKU, or the URL slug when the page carries none.
	// Uppercase, restricted to [A-Z0-9_-].
	ID string `json:"id"`

	// Name is the HTML-decoded, whitespace-collapsed product title.
	Name string `json:"name"`

	// WidthCM is the width parsed from the name ("3.0 cm"), nil when the
	// name carries no width token.
	WidthCM *float64 `json:"width_cm"`

	// Color is a hex color guessed from keywords in the name.
	Color string `json:"color"`

	// Style is "grain" or "metal".
	Style string `json:"style"`

	// Image is the local path of the downloaded image, nil when no image
	// URL was found or the download failed.
	Image *string `json:"img"`
}

// SetImage records the local image path, normalizing path separators so
// the JSON output is stable across platforms.
func (r *Record) SetImage(localPath string) {
	p := filepath.ToSlash(localPath)
	r.Image = &p
}
