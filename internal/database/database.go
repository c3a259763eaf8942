package database

import (
	"context"
	"fmt"
	"time"

	"github.com/stackfolio/core/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect opens a MongoDB connection, verifies it and ensures the indexes
// the query layer depends on.
func Connect(cfg *config.AppConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongodb connect failed: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, nil, fmt.Errorf("mongodb ping failed: %w", err)
	}

	db := client.Database(cfg.Database.Name)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, nil, fmt.Errorf("index bootstrap failed: %w", err)
	}
	return client, db, nil
}

// ensureIndexes creates the indexes used by the stores. CreateMany is
// idempotent for identical definitions.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("notes").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// Full-text search over title and content.
			Keys: bson.D{{Key: "title", Value: "text"}, {Key: "content", Value: "text"}},
		},
		{
			// Share tokens are unique; sparse so unshared notes stay unindexed.
			Keys:    bson.D{{Key: "shareId", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			// Owner-scoped list queries.
			Keys: bson.D{{Key: "user", Value: 1}, {Key: "isPinned", Value: -1}, {Key: "updatedAt", Value: -1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}
