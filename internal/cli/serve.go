package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kallax/internal/server"
	"github.com/matzehuels/kallax/pkg/cache"
	"github.com/matzehuels/kallax/pkg/config"
	"github.com/matzehuels/kallax/pkg/integrations/bgg"
	"github.com/matzehuels/kallax/pkg/pipeline"
	"github.com/matzehuels/kallax/pkg/storage"
)

// serveCommand creates the serve command, which runs the HTTP API. All
// settings come from KALLAX_* environment variables and .env files.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		envFiles []string
		addr     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Settings are read from KALLAX_* environment variables, after loading .env
files. KALLAX_REDIS_URL selects a Redis cache and KALLAX_MONGO_URI stores
the latest result of each user in MongoDB.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServer(envFiles...)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if level, err := log.ParseLevel(cfg.LogLevel); err == nil && !cmd.Flags().Changed("verbose") {
				c.SetLogLevel(level)
			}
			return c.serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default .env)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides KALLAX_ADDR")

	return cmd
}

func (c *CLI) serve(ctx context.Context, cfg config.Server) error {
	backend, err := serverCache(ctx, cfg)
	if err != nil {
		return err
	}

	store, err := serverStore(ctx, cfg)
	if err != nil {
		backend.Close()
		return err
	}

	client := bgg.NewClient(backend, cfg.CacheTTL, cfg.BGGToken)
	client.SetBaseURL(cfg.BGGBaseURL)

	runner := pipeline.NewRunner(backend, nil, client, c.Logger)
	defer runner.Close()

	srv := server.New(runner, store, c.Logger, server.Options{
		MaxItems:       cfg.MaxItems,
		RequestTimeout: cfg.WriteTimeout,
	})
	// ListenAndServe closes the store on shutdown.
	c.Logger.Info("starting server", "config", cfg.String())
	return srv.ListenAndServe(ctx, cfg.Addr, cfg.ReadTimeout, cfg.WriteTimeout, cfg.ShutdownTimeout)
}

func serverCache(ctx context.Context, cfg config.Server) (cache.Cache, error) {
	if cfg.RedisURL != "" {
		return cache.NewRedisCache(ctx, cfg.RedisURL, cfg.RedisPrefix)
	}
	dir := cfg.CacheDir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return nil, fmt.Errorf("get cache dir: %w", err)
		}
	}
	return cache.NewFileCache(dir)
}

func serverStore(ctx context.Context, cfg config.Server) (storage.Store, error) {
	if cfg.MongoURI == "" {
		return storage.NewMemoryStore(), nil
	}
	return storage.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
}
