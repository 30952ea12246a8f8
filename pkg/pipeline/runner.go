package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/dataset"
	"github.com/matzehuels/chartkit/pkg/observability"
	"github.com/matzehuels/chartkit/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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

// Execute runs the complete load → render → sink pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	ds, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Dataset = ds
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Records = ds.Len()
	result.Stats.Dropped = ds.Dropped
	result.Stats.Filtered = ds.Filtered
	result.CacheInfo.LoadHit = loadHit

	r.Logger.Info("loaded dataset",
		"source", opts.Chart.Source,
		"records", ds.Len(),
		"dropped", ds.Dropped,
		"duration", result.Stats.LoadTime)

	// Stage 2 and 3: Render and sink
	renderStart := time.Now()
	artifacts, hash, renderHit, err := r.renderWithCacheInfo(ctx, ds, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts.data
	result.Pass = artifacts.pass
	result.DatasetHash = hash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"kind", opts.Chart.Kind,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads the dataset with caching and returns cache hit info.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*dataset.Dataset, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}

	keyOpts := opts.DatasetKeyOpts()
	keyOpts.ModTime = modTime(opts.Chart.Source)
	cacheKey := r.Keyer.DatasetKey(opts.Chart.Source, keyOpts)
	hooks := observability.Cache()

	// Try cache first (unless refresh requested or the loader is custom)
	cacheable := opts.Loader == nil
	if cacheable && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if ds, err := unmarshalDataset(data); err == nil {
				hooks.OnCacheHit(ctx, "dataset")
				return ds, true, nil // Cache hit
			}
		}
		hooks.OnCacheMiss(ctx, "dataset")
	}

	// Load
	pipe := observability.Pipeline()
	pipe.OnLoadStart(ctx, opts.Chart.Source)
	start := time.Now()
	ds, err := Load(ctx, opts)
	pipe.OnLoadComplete(ctx, opts.Chart.Source, ds.Len(), dropped(ds), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	if ds.Dropped > 0 {
		opts.Logger.Debug("dropped unparseable rows", "source", opts.Chart.Source, "dropped", ds.Dropped)
	}

	// Cache the result
	if cacheable {
		if data, err := marshalDataset(ds); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLDataset); err == nil {
				hooks.OnCacheSet(ctx, "dataset", len(data))
			}
		}
	}

	return ds, false, nil // Cache miss
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*dataset.Dataset, error) {
	ds, _, err := r.LoadWithCacheInfo(ctx, opts)
	return ds, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, ds *dataset.Dataset, opts Options) (map[string][]byte, bool, error) {
	out, _, hit, err := r.renderWithCacheInfo(ctx, ds, opts)
	return out.data, hit, err
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, ds *dataset.Dataset, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, ds, opts)
	return artifacts, err
}

type rendered struct {
	data map[string][]byte
	pass render.Pass
}

func (r *Runner) renderWithCacheInfo(ctx context.Context, ds *dataset.Dataset, opts Options) (rendered, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return rendered{}, "", false, err
	}

	// Compute cache key from dataset content
	datasetHash, err := cache.HashJSON(ds)
	if err != nil {
		return rendered{}, "", false, fmt.Errorf("hash dataset for cache key: %w", err)
	}
	hooks := observability.Cache()

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(datasetHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				hooks.OnCacheMiss(ctx, "artifact")
				break
			}
			hooks.OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return rendered{data: artifacts}, datasetHash, true, nil // All artifacts from cache
		}
	}

	// Render all formats
	data, pass, err := Render(ctx, ds, opts)
	if err != nil {
		return rendered{}, datasetHash, false, err
	}

	// Cache each format
	for format, b := range data {
		cacheKey := r.Keyer.ArtifactKey(datasetHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, b, cache.TTLArtifact); err == nil {
			hooks.OnCacheSet(ctx, "artifact", len(b))
		}
	}

	return rendered{data: data, pass: pass}, datasetHash, false, nil // Cache miss
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

func dropped(ds *dataset.Dataset) int {
	if ds == nil {
		return 0
	}
	return ds.Dropped
}
