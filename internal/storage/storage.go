package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/marcoscrape/molduras/internal/config"
	"github.com/marcoscrape/molduras/internal/types"
)

// Store persists a finished collection of records.
type Store interface {
	// Flush writes the collection's records in insertion order.
	Flush(ctx context.Context, c *Collection) error

	// Close releases resources.
	Close() error

	// Name returns the backend identifier.
	Name() string
}

// New creates the store selected by the configuration.
func New(cfg *config.Config, logger *slog.Logger) (Store, error) {
	switch cfg.Storage.Type {
	case "json":
		return NewJSONStore(cfg.Storage.DataPath, logger), nil
	case "mongo":
		return NewMongoStore(cfg.Storage.Mongo, logger)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}

// Collection is an ordered, id-keyed set of records with first-write-wins
// semantics: a record whose id was already added is silently dropped.
type Collection struct {
	order []*types.Record
	index map[string]struct{}
}

// NewCollection creates an empty Collection.
func NewCollection() *Collection {
	return &Collection{
		index: make(map[string]struct{}),
	}
}

// Add inserts a record unless its id is already present. Returns true if
// the record was kept.
func (c *Collection) Add(rec *types.Record) bool {
	if _, ok := c.index[rec.ID]; ok {
		return false
	}
	c.index[rec.ID] = struct{}{}
	c.order = append(c.order, rec)
	return true
}

// Has reports whether an id has been added.
func (c *Collection) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Records returns the records in insertion order. The slice is never nil
// so an empty collection serializes as [] rather than null.
func (c *Collection) Records() []*types.Record {
	if c.order == nil {
		return []*types.Record{}
	}
	return c.order
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.order)
}
