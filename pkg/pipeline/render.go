package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mvollbrecht/pageflow/pkg/cache"
	"github.com/mvollbrecht/pageflow/pkg/layout"
	"github.com/mvollbrecht/pageflow/pkg/render"
)

// RenderWithCacheInfo renders artifacts for the given pages with
// caching and reports whether everything came from cache.
//
// Image artifacts are keyed "format:page" ("svg:1", "png:2"); the JSON
// artifact covers all pages and is keyed "json".
func (r *Runner) RenderWithCacheInfo(ctx context.Context, pages []layout.Page, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	pagesData, err := json.Marshal(pages)
	if err != nil {
		return nil, false, fmt.Errorf("serialize pages for cache key: %w", err)
	}
	pagesHash := cache.Hash(pagesData)

	selected := selectPages(pages, opts.Pages)

	// Try to serve everything from cache first.
	artifacts := make(map[string][]byte)
	allCached := true

Cached:
	for _, format := range opts.Formats {
		if format == FormatJSON {
			// JSON is a plain serialization, never cached.
			artifacts[FormatJSON] = pagesData
			continue
		}
		for _, p := range selected {
			key := r.Keyer.ArtifactKey(pagesHash, opts.ArtifactKeyOpts(format, p.Number))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				allCached = false
				break Cached
			}
			artifacts[artifactName(format, p.Number)] = data
		}
	}
	if allCached {
		return artifacts, true, nil
	}

	// Render everything that is not a pure serialization.
	renderOpts := []render.Option{render.WithScale(opts.Scale)}
	if opts.Guides {
		renderOpts = append(renderOpts, render.WithGuides())
	}
	if opts.Estimator == EstimatorMeasure {
		if m, err := layout.NewMeasurer(layout.Letter(), layout.WithLogger(opts.Logger)); err == nil {
			defer m.Close()
			renderOpts = append(renderOpts, render.WithEstimator(m))
		}
	}

	artifacts = make(map[string][]byte)
	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			artifacts[FormatJSON] = pagesData

		case FormatSVG:
			for _, p := range selected {
				data := render.RenderSVG(p, renderOpts...)
				artifacts[artifactName(format, p.Number)] = data
				key := r.Keyer.ArtifactKey(pagesHash, opts.ArtifactKeyOpts(format, p.Number))
				_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
			}

		case FormatPNG:
			for _, p := range selected {
				data, err := render.RenderPNG(p, renderOpts...)
				if err != nil {
					return nil, false, fmt.Errorf("render page %d: %w", p.Number, err)
				}
				artifacts[artifactName(format, p.Number)] = data
				key := r.Keyer.ArtifactKey(pagesHash, opts.ArtifactKeyOpts(format, p.Number))
				_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
			}
		}
	}

	return artifacts, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, pages []layout.Page, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, pages, opts)
	return artifacts, err
}

// artifactName builds the map key for one rendered page.
func artifactName(format string, page int) string {
	return fmt.Sprintf("%s:%d", format, page)
}

// selectPages filters pages down to the requested page numbers,
// keeping document order. An empty filter selects everything; unknown
// numbers are ignored.
func selectPages(pages []layout.Page, nums []int) []layout.Page {
	if len(nums) == 0 {
		return pages
	}
	want := make(map[int]bool, len(nums))
	for _, n := range nums {
		want[n] = true
	}
	var out []layout.Page
	for _, p := range pages {
		if want[p.Number] {
			out = append(out, p)
		}
	}
	return out
}
