package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mvollbrecht/pageflow/pkg/cache"
	"github.com/mvollbrecht/pageflow/pkg/layout"
	"github.com/mvollbrecht/pageflow/pkg/paper"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can safely share one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
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

// Execute runs the complete normalize → paginate → render pipeline.
func (r *Runner) Execute(ctx context.Context, doc *paper.Document, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Normalize
	normStart := time.Now()
	els := layout.Normalize(doc, layout.Letter())
	result.Stats.NormalizeTime = time.Since(normStart)
	result.Stats.ElementCount = len(els)

	r.Logger.Info("normalized document",
		"elements", len(els),
		"duration", result.Stats.NormalizeTime)

	// Stage 2: Paginate
	pagStart := time.Now()
	pages, pagesHit, err := r.PaginateWithCacheInfo(ctx, els, opts)
	if err != nil {
		return nil, fmt.Errorf("paginate: %w", err)
	}
	result.Pages = pages
	result.Stats.PaginateTime = time.Since(pagStart)
	result.Stats.PageCount = len(pages)
	result.CacheInfo.PagesHit = pagesHit

	if data, err := json.Marshal(pages); err == nil {
		result.PagesHash = cache.Hash(data)
	}

	r.Logger.Info("paginated document",
		"pages", len(pages),
		"cached", pagesHit,
		"duration", result.Stats.PaginateTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, pages, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered pages",
		"formats", opts.Formats,
		"artifacts", len(artifacts),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// PaginateWithCacheInfo paginates elements with caching and reports
// whether the result came from cache.
func (r *Runner) PaginateWithCacheInfo(ctx context.Context, els []layout.Element, opts Options) ([]layout.Page, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	geom := layout.Letter()

	elData, err := json.Marshal(els)
	if err != nil {
		return nil, false, fmt.Errorf("serialize elements for cache key: %w", err)
	}
	cacheKey := r.Keyer.PagesKey(cache.Hash(elData), opts.PagesKeyOpts(geom))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var pages []layout.Page
			if err := json.Unmarshal(data, &pages); err == nil {
				return pages, true, nil
			}
			// Corrupt entry: fall through and recompute.
		}
	}

	est, closeEst, err := r.newEstimator(opts)
	if err != nil {
		return nil, false, err
	}
	defer closeEst()

	pages := layout.Paginate(els, est, geom)

	if data, err := json.Marshal(pages); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLPages)
	}

	return pages, false, nil
}

// Paginate is a convenience wrapper that discards the cache hit info.
func (r *Runner) Paginate(ctx context.Context, els []layout.Element, opts Options) ([]layout.Page, error) {
	pages, _, err := r.PaginateWithCacheInfo(ctx, els, opts)
	return pages, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// newEstimator builds the configured estimator. The returned func
// releases estimator resources (font faces) and must always be called.
func (r *Runner) newEstimator(opts Options) (layout.Estimator, func(), error) {
	switch opts.Estimator {
	case EstimatorAnalytic:
		return layout.NewAnalytic(layout.Letter()), func() {}, nil
	default:
		m, err := layout.NewMeasurer(layout.Letter(), layout.WithLogger(opts.Logger))
		if err != nil {
			return nil, nil, fmt.Errorf("create measurer: %w", err)
		}
		return m, func() { _ = m.Close() }, nil
	}
}
