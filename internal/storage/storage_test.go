package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marcoscrape/molduras/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func rec(id, name string) *types.Record {
	return &types.Record{
		ID:    id,
		Name:  name,
		Color: "#555555",
		Style: types.StyleGrain,
	}
}

func TestCollectionFirstWriteWins(t *testing.T) {
	c := NewCollection()

	if !c.Add(rec("MP-1", "primera")) {
		t.Fatal("first add must succeed")
	}
	if c.Add(rec("MP-1", "segunda")) {
		t.Fatal("duplicate id must be dropped")
	}
	if !c.Add(rec("MP-2", "otra")) {
		t.Fatal("distinct id must succeed")
	}

	recs := c.Records()
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Name != "primera" {
		t.Errorf("first write must win, got %q", recs[0].Name)
	}
	if recs[0].ID != "MP-1" || recs[1].ID != "MP-2" {
		t.Errorf("insertion order lost: %v, %v", recs[0].ID, recs[1].ID)
	}
}

func TestJSONStoreWritesArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "molduras_scraped.json")
	s := NewJSONStore(path, testLogger)

	c := NewCollection()
	width := 3.0
	r := rec("MP-301", "Moldura Nogal 3.0 cm")
	r.WidthCM = &width
	r.SetImage(filepath.Join("img", "molduras", "MP-301.jpg"))
	c.Add(r)
	c.Add(rec("MP-302", "Marco Metálico"))

	if err := s.Flush(context.Background(), c); err != nil {
		t.Fatalf("flush: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	// Non-ASCII stays unescaped, and nested dirs were created.
	if !strings.Contains(string(raw), "Metálico") {
		t.Errorf("non-ASCII was escaped: %s", raw)
	}

	var out []map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(out))
	}
	if out[0]["id"] != "MP-301" {
		t.Errorf("id: got %v", out[0]["id"])
	}
	if out[0]["width_cm"] != 3.0 {
		t.Errorf("width_cm: got %v", out[0]["width_cm"])
	}
	if out[0]["img"] != "img/molduras/MP-301.jpg" {
		t.Errorf("img: got %v", out[0]["img"])
	}
	if out[1]["width_cm"] != nil {
		t.Errorf("missing width must be null, got %v", out[1]["width_cm"])
	}
	if out[1]["img"] != nil {
		t.Errorf("missing image must be null, got %v", out[1]["img"])
	}
}

func TestJSONStoreEmptyCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	s := NewJSONStore(path, testLogger)

	if err := s.Flush(context.Background(), NewCollection()); err != nil {
		t.Fatalf("flush: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if strings.TrimSpace(string(raw)) != "[]" {
		t.Errorf("empty collection must serialize as [], got %q", raw)
	}
}

func TestJSONStoreOverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	s := NewJSONStore(path, testLogger)
	c := NewCollection()
	c.Add(rec("MP-1", "una"))
	if err := s.Flush(context.Background(), c); err != nil {
		t.Fatalf("flush: %v", err)
	}

	raw, _ := os.ReadFile(path)
	if strings.Contains(string(raw), "stale") {
		t.Error("previous output was not overwritten")
	}
}
