package database

import (
	"context"
	"fmt"
	"log"

	"formbot/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo builds a MongoDB client for cfg.URI. The driver connects
// lazily, so an unreachable server surfaces on the first operation.
func ConnectMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.Timeout > 0 {
		opts.SetServerSelectionTimeout(cfg.Timeout)
		opts.SetConnectTimeout(cfg.Timeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	log.Printf("[DB] MongoDB client ready: database=%s, collection=%s", cfg.Database, cfg.Collection)
	return client, nil
}
