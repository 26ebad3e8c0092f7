package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marcoscrape/molduras/internal/config"
	"github.com/marcoscrape/molduras/internal/types"
)

// MongoStore writes records to a MongoDB collection, replacing any
// previous document with the same product id.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(cfg config.MongoConfig, logger *slog.Logger) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		logger:     logger.With("component", "mongo_store"),
	}, nil
}

func (s *MongoStore) Name() string { return "mongo" }

// Flush upserts every record keyed by its product id.
func (s *MongoStore) Flush(ctx context.Context, c *Collection) error {
	for _, rec := range c.Records() {
		doc := bson.M{
			"_id":      rec.ID,
			"name":     rec.Name,
			"width_cm": rec.WidthCM,
			"color":    rec.Color,
			"style":    rec.Style,
			"img":      rec.Image,
		}

		_, err := s.collection.ReplaceOne(ctx,
			bson.M{"_id": rec.ID},
			doc,
			options.Replace().SetUpsert(true),
		)
		if err != nil {
			return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("upsert %s: %w", rec.ID, err)}
		}
	}

	s.logger.Info("records stored in mongodb", "records", c.Len())
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
