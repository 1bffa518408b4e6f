package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvollbrecht/pageflow/internal/server"
	"github.com/mvollbrecht/pageflow/pkg/cache"
	"github.com/mvollbrecht/pageflow/pkg/pipeline"
	"github.com/mvollbrecht/pageflow/pkg/store"
)

// serveCommand creates the serve command, which runs the preview
// service.
func (c *CLI) serveCommand() *cobra.Command {
	cfg := c.Config.Server

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the preview service",
		Long: `Run the Pageflow preview service.

The service exposes a JSON API for storing paper documents, running the
layout pipeline, and fetching rendered page previews. By default documents
are held in memory and artifacts are cached on disk; point --mongo-uri and
--redis-url at real backends for a shared deployment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	cmd.Flags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "redis URL for the artifact cache (default: file cache)")
	cmd.Flags().StringVar(&cfg.MongoURI, "mongo-uri", cfg.MongoURI, "mongodb URI for the document store (default: in-memory)")
	cmd.Flags().StringVar(&cfg.MongoDatabase, "mongo-db", cfg.MongoDatabase, "mongodb database name")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg ServerConfig) error {
	cch, err := c.serveCache(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	st, err := c.serveStore(ctx, cfg)
	if err != nil {
		_ = cch.Close()
		return fmt.Errorf("initialize store: %w", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	runner := pipeline.NewRunner(cch, serveKeyer(cfg), c.Logger)
	defer runner.Close()

	srv := server.New(cfg.Addr, runner, st, c.Logger)
	return srv.Start(ctx)
}

// serveKeyer scopes cache keys under the application name when the
// backend is Redis, which may be shared with other deployments. The
// local file cache needs no namespace.
func serveKeyer(cfg ServerConfig) cache.Keyer {
	if cfg.RedisURL == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, appName+":")
}

// serveCache picks the artifact cache backend: Redis when configured,
// the file cache otherwise.
func (c *CLI) serveCache(ctx context.Context, cfg ServerConfig) (cache.Cache, error) {
	if cfg.RedisURL != "" {
		c.Logger.Info("using redis cache", "url", cfg.RedisURL)
		return cache.NewRedisCache(ctx, cfg.RedisURL)
	}
	return c.newCache(false)
}

// serveStore picks the document store backend: MongoDB when
// configured, memory otherwise.
func (c *CLI) serveStore(ctx context.Context, cfg ServerConfig) (store.Store, error) {
	if cfg.MongoURI != "" {
		c.Logger.Info("using mongodb store", "database", cfg.MongoDatabase)
		return store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	}
	c.Logger.Warn("using in-memory document store, documents will not survive restarts")
	return store.NewMemoryStore(), nil
}
