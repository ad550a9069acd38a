package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fretboard/internal/server"
	"github.com/matzehuels/fretboard/pkg/buildinfo"
	"github.com/matzehuels/fretboard/pkg/cache"
	"github.com/matzehuels/fretboard/pkg/observability"
	"github.com/matzehuels/fretboard/pkg/pipeline"
)

const (
	defaultAddr        = ":8080"
	defaultRedisPrefix = "fretboard:"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
		metrics  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Render diagrams over HTTP",
		Long: `Render diagrams over HTTP.

Diagrams are described by query parameters using the diagram file keys, for
example /diagram.svg?label=C&dots=2:1,4:2,5:3&show_fret_nums. Artifacts are
cached in the local cache directory, or in Redis with --redis so several
instances can share them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisURL, noCache, metrics)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL for a shared artifact cache (redis://host:6379/0)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&metrics, "metrics", true, "expose Prometheus metrics at /metrics")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisURL string, noCache, metrics bool) error {
	logger := loggerFromContext(ctx)

	store, err := serveCache(ctx, redisURL, noCache)
	if err != nil {
		return err
	}
	// Artifacts from other releases may draw differently.
	keyer := cache.NewScopedKeyer(nil, buildinfo.Version+":")
	runner := pipeline.NewRunner(store, keyer, logger)
	defer runner.Close()

	opts := []server.Option{server.WithLogger(logger)}
	if metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		hooks := observability.NewPrometheusHooks(reg)
		observability.SetRenderHooks(hooks)
		observability.SetCacheHooks(hooks)
		defer observability.Reset()
		opts = append(opts, server.WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	printInfo("Serving diagrams on %s", StyleHighlight.Render(addr))
	err = server.New(runner, opts...).ListenAndServe(ctx, addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func serveCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if redisURL == "" {
		return newCache(noCache)
	}
	if noCache {
		return nil, fmt.Errorf("--redis and --no-cache are mutually exclusive")
	}
	store, err := cache.NewRedisCache(ctx, redisURL, defaultRedisPrefix)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	loggerFromContext(ctx).Info("using redis cache", "url", redactURL(redisURL))
	return store, nil
}
