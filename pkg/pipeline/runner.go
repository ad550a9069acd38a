package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fretboard/pkg/cache"
	"github.com/matzehuels/fretboard/pkg/core/fretboard"
	"github.com/matzehuels/fretboard/pkg/core/fretboard/layout"
	"github.com/matzehuels/fretboard/pkg/core/fretboard/sink"
	"github.com/matzehuels/fretboard/pkg/core/fretboard/surface"
	"github.com/matzehuels/fretboard/pkg/observability"
)

// Runner executes the pipeline with caching.
//
// The Runner holds no per-diagram state, so several goroutines can share one
// Runner as long as the cache is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer means [cache.DefaultKeyer], a nil
// cache disables caching and a nil logger means [log.Default].
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute validates opts, then returns an artifact for every requested
// format, reading from and writing to the cache unless opts.Refresh is set.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	l, err := opts.Layout()
	if err != nil {
		return nil, err
	}

	result := &Result{
		OptionsHash: opts.Hash(),
		Layout:      l,
		Artifacts:   make(map[string][]byte, len(opts.Formats)),
	}

	var missing []string
	for _, format := range opts.Formats {
		if data, ok := r.lookup(ctx, result.OptionsHash, opts, format); ok {
			result.Artifacts[format] = data
			result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
			continue
		}
		missing = append(missing, format)
	}
	result.CacheInfo.RenderHit = len(missing) == 0

	if len(missing) > 0 {
		start := time.Now()
		rendered, err := Render(ctx, opts, missing)
		if err != nil {
			return nil, err
		}
		result.Stats.RenderTime = time.Since(start)
		result.Stats.Rendered = missing

		for format, data := range rendered {
			result.Artifacts[format] = data
			r.store(ctx, result.OptionsHash, opts, format, data)
		}
	}

	opts.Logger.Info("rendered diagram",
		"formats", opts.Formats,
		"cached", len(result.CacheInfo.Hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) lookup(ctx context.Context, hash string, opts Options, format string) ([]byte, bool) {
	if opts.Refresh {
		return nil, false
	}
	key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Warn("cache read failed", "format", format, "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, format)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, format)
	opts.Logger.Debug("cache hit", "format", format)
	return data, true
}

func (r *Runner) store(ctx context.Context, hash string, opts Options, format string, data []byte) {
	key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		opts.Logger.Warn("cache write failed", "format", format, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, format, len(data))
}

// Nearest returns the position a click at canvas point p resolves to on the
// diagram described by opts. The click is delivered through an SVG surface,
// exactly as an embedded diagram would receive it.
func (r *Runner) Nearest(ctx context.Context, opts Options, p layout.Point) (layout.FretCoord, error) {
	var (
		coord   layout.FretCoord
		clicked bool
	)
	d := opts.Diagram()
	d.OnClick = func(c layout.FretCoord, _ surface.Surface) {
		coord, clicked = c, true
	}

	diagram, err := fretboard.Render(sink.SVGHost(), d)
	if err != nil {
		return layout.FretCoord{}, err
	}
	defer diagram.Destroy()

	diagram.Surface().(*sink.SVGSurface).Dispatch(surface.Click, p)
	observability.Render().OnInteraction(ctx, surface.Click.String())
	if !clicked {
		r.Logger.Warn("click was not delivered", "x", p.X, "y", p.Y)
	}
	return coord, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
