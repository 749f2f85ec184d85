package store

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/JonMunkholm/suppliers/internal/config"
	"github.com/JonMunkholm/suppliers/internal/core"
)

// Open builds the store selected by cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config) (core.Store, error) {
	switch strings.ToLower(cfg.Store.Driver) {
	case config.DriverMemory, "":
		if cfg.Store.Seed {
			slog.Info("using memory store", "seeded", len(SeedSuppliers()))
			return NewSeededMemoryStore(), nil
		}
		slog.Info("using memory store", "seeded", 0)
		return NewMemoryStore(), nil

	case config.DriverPostgres:
		s, err := NewPostgresStore(ctx, PostgresOptions{
			URL:             cfg.Database.URL,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		})
		if err != nil {
			return nil, err
		}
		// Log which database we connected to
		if u, err := url.Parse(cfg.Database.URL); err == nil {
			slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
		} else {
			slog.Info("connected to database")
		}
		return s, nil

	case config.DriverMongo:
		s, err := NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.ConnectTimeout)
		if err != nil {
			return nil, err
		}
		slog.Info("connected to MongoDB", "database", cfg.Mongo.Database)
		return s, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
