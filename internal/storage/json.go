package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/marcoscrape/molduras/internal/types"
)

// JSONStore writes records as an indented JSON array to a single file,
// overwriting any previous output at that path.
type JSONStore struct {
	path   string
	logger *slog.Logger
}

// NewJSONStore creates a JSON file store.
func NewJSONStore(path string, logger *slog.Logger) *JSONStore {
	return &JSONStore{
		path:   path,
		logger: logger.With("component", "json_store"),
	}
}

func (s *JSONStore) Name() string { return "json" }

// Flush writes the collection to disk, creating the parent directory if
// absent. Non-ASCII characters are preserved unescaped.
func (s *JSONStore) Flush(_ context.Context, c *Collection) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("create output dir: %w", err)}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("create output file: %w", err)}
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c.Records()); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("encode JSON: %w", err)}
	}

	s.logger.Info("JSON written", "path", s.path, "records", c.Len())
	return nil
}

func (s *JSONStore) Close() error { return nil }
