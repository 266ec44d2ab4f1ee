package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/labyrinth/pkg/cache"
	"github.com/matzehuels/labyrinth/pkg/grid"
	pkgio "github.com/matzehuels/labyrinth/pkg/io"
	"github.com/matzehuels/labyrinth/pkg/observability"
)

// Runner encapsulates rendering with caching.
// Both the CLI and the HTTP server use it so they share cache keys.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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

// Execute loads opts.Input and renders it.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Input == "" {
		return nil, fmt.Errorf("invalid options: input file is required")
	}
	r.applyLogger(&opts)

	loadStart := time.Now()
	g, def, err := pkgio.Import(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	opts.Logger.Debug("loaded maze", "file", opts.Input, "grid", g, "duration", time.Since(loadStart))

	result, err := r.RenderDefinition(ctx, g, def.Render, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart) - result.Stats.RenderTime
	return result, nil
}

// Render renders g with the raster defaults overridden by opts.Render.
func (r *Runner) Render(ctx context.Context, g *grid.Grid, opts Options) (*Result, error) {
	return r.RenderDefinition(ctx, g, nil, opts)
}

// RenderDefinition renders g, layering file (the definition's render table,
// may be nil) between the raster defaults and opts.Render. Each artifact is
// looked up in the cache first; misses are rendered and stored.
func (r *Runner) RenderDefinition(ctx context.Context, g *grid.Grid, file *pkgio.RenderOverrides, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	ro := opts.RasterOptions(file)
	if err := ro.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	geo := ro.Geometry(g.Width(), g.Height())
	result := &Result{
		ID:        uuid.NewString(),
		Grid:      g,
		Raster:    ro,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		Stats: Stats{
			Cells:       g.Len(),
			Passages:    len(g.Passages()),
			ImageWidth:  geo.Width,
			ImageHeight: geo.Height,
		},
		CacheInfo: CacheInfo{Hits: make(map[string]bool, len(opts.Formats))},
	}

	gridData, err := pkgio.MarshalJSON(g)
	if err != nil {
		return nil, fmt.Errorf("serialize grid for cache key: %w", err)
	}
	result.GridHash = cache.Hash(gridData)

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, result.ID, opts.Formats)
	start := time.Now()

	for _, format := range opts.Formats {
		data, hit, err := r.renderCached(ctx, g, format, result.GridHash, opts, result)
		if err != nil {
			err = fmt.Errorf("render %s: %w", format, err)
			hooks.OnRenderComplete(ctx, result.ID, opts.Formats, time.Since(start), err)
			return nil, err
		}
		result.Artifacts[format] = data
		result.CacheInfo.Hits[format] = hit
	}

	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = allHits(result.CacheInfo.Hits)
	hooks.OnRenderComplete(ctx, result.ID, opts.Formats, result.Stats.RenderTime, nil)

	opts.Logger.Info("rendered maze",
		"id", result.ID,
		"grid", g,
		"formats", opts.Formats,
		"cached", result.CacheInfo.RenderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) renderCached(ctx context.Context, g *grid.Grid, format, gridHash string, opts Options, result *Result) ([]byte, bool, error) {
	key := r.Keyer.ArtifactKey(gridHash, opts.ArtifactKeyOpts(format, result.Raster))
	cacheHooks := observability.Cache()

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "err", err)
		}
		if err == nil && hit {
			cacheHooks.OnCacheHit(ctx, format)
			return data, true, nil
		}
		cacheHooks.OnCacheMiss(ctx, format)
	}

	start := time.Now()
	data, err := RenderFormat(ctx, g, format, opts, result.Raster)
	observability.Render().OnFormatComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	opts.Logger.Debug("rendered artifact", "format", format, "bytes", len(data), "duration", time.Since(start))

	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		opts.Logger.Warn("cache write failed", "format", format, "err", err)
	} else {
		cacheHooks.OnCacheSet(ctx, format, len(data))
	}
	return data, false, nil
}

func allHits(hits map[string]bool) bool {
	for _, hit := range hits {
		if !hit {
			return false
		}
	}
	return len(hits) > 0
}

// Close releases resources held by the runner (primarily the cache).
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
