// Package database owns the MongoDB and Redis connections and their
// liveness checks.
package database

import (
	"context"
	"fmt"
	"time"

	"filesmanager/backend/internal/config"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Clients bundles the external store connections shared by the server and
// the worker.
type Clients struct {
	Mongo *mongo.Client
	DB    *mongo.Database
	Redis *redis.Client
}

// Connect establishes and pings both connections. It fails fast so the
// application never starts against an unreachable store.
func Connect(ctx context.Context, cfg *config.Config) (*Clients, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Clients{
		Mongo: client,
		DB:    client.Database(cfg.DBName),
		Redis: rdb,
	}, nil
}

// MongoAlive reports whether the document store answers a ping.
func (c *Clients) MongoAlive(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.Mongo.Ping(ctx, readpref.Primary()) == nil
}

// RedisAlive reports whether the session store answers a ping.
func (c *Clients) RedisAlive(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.Redis.Ping(ctx).Err() == nil
}

// Close disconnects both clients.
func (c *Clients) Close(ctx context.Context) error {
	if err := c.Redis.Close(); err != nil {
		return err
	}
	return c.Mongo.Disconnect(ctx)
}
