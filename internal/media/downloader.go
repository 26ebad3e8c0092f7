package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/marcoscrape/molduras/internal/types"
)

// Downloader fetches product images to local disk. Every failure is
// returned to the caller, which logs it and records the product with a
// null image path; downloads are never retried.
type Downloader struct {
	dir       string
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// NewDownloader creates a Downloader writing into dir, creating it if
// absent.
func NewDownloader(dir, userAgent string, timeout time.Duration, logger *slog.Logger) (*Downloader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}

	return &Downloader{
		dir:       dir,
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    logger.With("component", "image_downloader"),
	}, nil
}

// PathFor returns the destination path for a product's image. Images are
// always stored as <id>.jpg regardless of the actual format.
func (d *Downloader) PathFor(id string) string {
	return filepath.Join(d.dir, id+".jpg")
}

// Download fetches imageURL and writes it to the path for id, returning
// the local path. An empty URL fails immediately without a network call.
func (d *Downloader) Download(ctx context.Context, imageURL, id string) (string, error) {
	if imageURL == "" {
		return "", types.ErrNoImage
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", &types.FetchError{URL: imageURL, Err: err}
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", &types.FetchError{URL: imageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &types.FetchError{
			URL:        imageURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}

	dest := d.PathFor(id)
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, resp.Body)
	if err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("write image file: %w", err)
	}

	d.logger.Debug("image downloaded", "url", imageURL, "path", dest, "size", size)
	return dest, nil
}
