package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/msaswata15/career-navigation-platform/internal/cache"
	"github.com/msaswata15/career-navigation-platform/internal/config"
	"github.com/msaswata15/career-navigation-platform/internal/db"
	"github.com/msaswata15/career-navigation-platform/internal/engine"
	"github.com/msaswata15/career-navigation-platform/internal/enrichment"
	"github.com/msaswata15/career-navigation-platform/internal/graph"
	"github.com/msaswata15/career-navigation-platform/internal/llm"
	"github.com/msaswata15/career-navigation-platform/internal/resolver"
	"github.com/msaswata15/career-navigation-platform/internal/search"
	"github.com/msaswata15/career-navigation-platform/internal/similarity"
	"github.com/msaswata15/career-navigation-platform/internal/skills"
	"github.com/msaswata15/career-navigation-platform/internal/synthesis"
)

// loadConfig merges the config file, environment, and defaults, then
// validates the result.
func loadConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	cfg.FromEnv()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// deps holds every connected collaborator for one command invocation.
// cache and history are nil when their backing services are not configured.
type deps struct {
	store    *graph.Neo4jStore
	llm      *llm.GeminiClient
	embedder *similarity.GeminiEmbedder
	oracle   *similarity.Oracle
	cache    *cache.Cache
	history  *db.DB
	engine   *engine.Engine
	log      *zap.Logger
}

// connect builds the full dependency graph from config. Optional services
// that fail to connect are logged and skipped rather than aborting startup.
func connect(ctx context.Context, cfg *config.Config, log *zap.Logger) (*deps, error) {
	store, err := graph.NewNeo4jStore(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, log)
	if err != nil {
		return nil, err
	}

	client, err := llm.NewGeminiClient(ctx, nil, cfg.APIKey)
	if err != nil {
		_ = store.Close(ctx)
		return nil, err
	}

	embedder, err := similarity.NewGeminiEmbedder(ctx, cfg.APIKey, "")
	if err != nil {
		_ = client.Close()
		_ = store.Close(ctx)
		return nil, err
	}

	d := &deps{
		store:    store,
		llm:      client,
		embedder: embedder,
		oracle:   similarity.NewOracle(embedder),
		log:      log,
	}

	if cfg.RedisURL != "" {
		ttl := time.Duration(cfg.CacheTTLHours) * time.Hour
		c, err := cache.Connect(ctx, cfg.RedisURL, ttl, log)
		if err != nil {
			log.Warn("cache unavailable, continuing without it", zap.Error(err))
		} else {
			d.cache = c
		}
	}

	if cfg.DatabaseURL != "" {
		history, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Warn("history store unavailable, continuing without it", zap.Error(err))
		} else if err := history.EnsureSchema(ctx); err != nil {
			log.Warn("history schema setup failed, continuing without it", zap.Error(err))
			history.Close()
		} else {
			d.history = history
		}
	}

	d.engine = engine.New(
		store,
		resolver.New(client, resolver.Options{}, log),
		search.New(store, cfg.MaxHops, log),
		skills.New(embedder, cfg.SkillThreshold, log),
		enrichment.New(client, log),
		synthesis.New(client, log),
		log,
	)

	return d, nil
}

// close releases every connection, tolerating partially built deps.
func (d *deps) close(ctx context.Context) {
	if d.history != nil {
		d.history.Close()
	}
	if err := d.cache.Close(); err != nil {
		d.log.Warn("failed to close cache", zap.Error(err))
	}
	if err := d.embedder.Close(); err != nil {
		d.log.Warn("failed to close embedder", zap.Error(err))
	}
	if err := d.llm.Close(); err != nil {
		d.log.Warn("failed to close text client", zap.Error(err))
	}
	if err := d.store.Close(ctx); err != nil {
		d.log.Warn("failed to close graph store", zap.Error(err))
	}
}
