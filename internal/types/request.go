package types

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Request represents a single HTTP GET to be executed by a fetcher.
type Request struct {
	// URL is the target URL.
	URL *url.URL

	// Headers are additional headers sent with the request.
	Headers http.Header

	// Timeout overrides the fetcher's default timeout when > 0.
	Timeout time.Duration

	// Tag categorizes the request ("listing", "product", "image").
	Tag string
}

// NewRequest creates a Request for the given URL.
func NewRequest(rawURL string) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q in %q", u.Scheme, rawURL)
	}

	return &Request{
		URL:     u,
		Headers: make(http.Header),
	}, nil
}

// URLString returns the string form of the request URL.
func (r *Request) URLString() string {
	if r.URL == nil {
		return ""
	}
	return r.URL.String()
}
