package media

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/marcoscrape/molduras/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func newDownloader(t *testing.T) *Downloader {
	t.Helper()
	d, err := NewDownloader(t.TempDir(), "test-agent", 5*time.Second, testLogger)
	if err != nil {
		t.Fatalf("new downloader: %v", err)
	}
	return d
}

func TestDownloadWritesFile(t *testing.T) {
	payload := []byte("\xff\xd8\xff fake jpeg bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "test-agent" {
			t.Errorf("user agent not sent: %q", ua)
		}
		w.Write(payload)
	}))
	defer srv.Close()

	d := newDownloader(t)
	path, err := d.Download(context.Background(), srv.URL+"/img/mp-301.jpg", "MP-301")
	if err != nil {
		t.Fatalf("download: %v", err)
	}

	if filepath.Base(path) != "MP-301.jpg" {
		t.Errorf("filename: got %q", path)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("file content mismatch")
	}
}

func TestDownloadEmptyURLFailsWithoutNetwork(t *testing.T) {
	d := newDownloader(t)
	_, err := d.Download(context.Background(), "", "MP-301")
	if !errors.Is(err, types.ErrNoImage) {
		t.Fatalf("expected ErrNoImage, got %v", err)
	}
}

func TestDownloadHTTPErrorReported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	d := newDownloader(t)
	_, err := d.Download(context.Background(), srv.URL+"/missing.jpg", "MP-404")
	if err == nil {
		t.Fatal("expected error for 404")
	}

	var fe *types.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %T", err)
	}
	if fe.StatusCode != http.StatusNotFound {
		t.Errorf("status: got %d", fe.StatusCode)
	}

	// No file should be left behind.
	if _, err := os.Stat(d.PathFor("MP-404")); !os.IsNotExist(err) {
		t.Errorf("expected no file on failure")
	}
}

func TestDownloadNetworkErrorReported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed before use: connection refused

	d := newDownloader(t)
	if _, err := d.Download(context.Background(), srv.URL+"/img.jpg", "MP-500"); err == nil {
		t.Fatal("expected network error")
	}
}
