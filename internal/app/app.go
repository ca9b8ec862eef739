// Package app is the composition root shared by the server and the CLI.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/parksite/internal/config"
	"github.com/kailas-cloud/parksite/internal/db"
	"github.com/kailas-cloud/parksite/internal/db/memory"
	"github.com/kailas-cloud/parksite/internal/db/postgres"
	"github.com/kailas-cloud/parksite/internal/db/sqlite"
	"github.com/kailas-cloud/parksite/internal/db/valkey"
	contentrepo "github.com/kailas-cloud/parksite/internal/repository/content"
	bloguc "github.com/kailas-cloud/parksite/internal/usecase/blog"
	healthuc "github.com/kailas-cloud/parksite/internal/usecase/health"
	searchuc "github.com/kailas-cloud/parksite/internal/usecase/search"
	seeduc "github.com/kailas-cloud/parksite/internal/usecase/seed"
	sitemapuc "github.com/kailas-cloud/parksite/internal/usecase/sitemap"
)

// OpenStore connects to the configured content store, waits until it answers
// and creates missing tables for SQL drivers.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (db.Store, error) {
	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}

	if m, ok := store.(db.Migrator); ok {
		if err := m.Migrate(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Debug("Schema up to date", zap.String("driver", cfg.Driver))
	}

	return store, nil
}

func newStore(ctx context.Context, cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		s, err := postgres.NewStore(ctx, postgres.Config{DSN: cfg.DSN, MaxConns: cfg.MaxConns})
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return s, nil
	case config.DriverSQLite:
		s, err := sqlite.NewStore(ctx, cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return s, nil
	case config.DriverValkey, config.DriverRedis:
		// Both speak RESP; rueidis handles either.
		s, err := valkey.NewStore(valkey.Config{
			Addrs:     cfg.Addrs,
			Password:  cfg.Password,
			KeyPrefix: cfg.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
		}
		return s, nil
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// App holds the wired use cases on top of one store.
type App struct {
	Store   db.Store
	Content *contentrepo.Repo
	Search  *searchuc.Service
	Blog    *bloguc.Service
	Sitemap *sitemapuc.Service
	Health  *healthuc.Service
	Seed    *seeduc.Service
}

// New wires repositories and use cases. The store is owned by the caller.
func New(cfg *config.Config, store db.Store) (*App, error) {
	table, err := cfg.Site.SectionTable()
	if err != nil {
		return nil, err
	}

	repo := contentrepo.New(store)

	return &App{
		Store:   store,
		Content: repo,
		Search: searchuc.New(table, repo, searchuc.Options{
			MinQueryLength: cfg.Search.MinQueryLength,
			PerSourceLimit: cfg.Search.PerSourceLimit,
			MaxResults:     cfg.Search.MaxResults,
			SourceTimeout:  cfg.Search.SourceTimeout(),
		}),
		Blog:    bloguc.New(repo, cfg.Blog.DefaultPageSize, cfg.Blog.MaxPageSize),
		Sitemap: sitemapuc.New(cfg.Site.BaseURL, cfg.Site.Routes(table), repo),
		Health:  healthuc.New(store, 0),
		Seed:    seeduc.New(repo),
	}, nil
}

// SeedFile loads a YAML fixture and writes it to the store.
func (a *App) SeedFile(ctx context.Context, path string) (seeduc.Summary, error) {
	f, err := seeduc.LoadFile(path)
	if err != nil {
		return seeduc.Summary{}, err
	}
	return a.Seed.Apply(ctx, f)
}
