// Package pipeline provides the core layout pipeline for Pageflow.
//
// This package implements the complete normalize → paginate → render
// pipeline shared by the CLI and the preview service. Centralizing it
// keeps both entry points behaving identically and puts the caching
// logic in one place.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Normalize: Flatten a paper document into layout elements
//  2. Paginate: Distribute elements across pages by estimated height
//  3. Render: Draw pages as SVG or PNG, or serialize them as JSON
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Estimator: "measure",
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, doc, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg:1"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mvollbrecht/pageflow/pkg/cache"
	"github.com/mvollbrecht/pageflow/pkg/layout"
)

// ============================================================================
// Defaults
// ============================================================================

const (
	// DefaultScale is the raster scale for PNG artifacts.
	DefaultScale = 2.0

	// DefaultEstimator measures text with real font metrics. The
	// analytic estimator is faster but coarser.
	DefaultEstimator = EstimatorMeasure
)

// Estimator kinds.
const (
	EstimatorMeasure  = "measure"
	EstimatorAnalytic = "analytic"
)

// ValidEstimators is the set of supported estimator kinds.
var ValidEstimators = map[string]bool{
	EstimatorMeasure:  true,
	EstimatorAnalytic: true,
}

// Format constants for output artifacts.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ============================================================================
// Options
// ============================================================================

// Options contains all configuration for a pipeline run. The struct
// serializes to JSON for API requests.
type Options struct {
	// Pagination options
	Estimator string `json:"estimator,omitempty"`
	Refresh   bool   `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Guides  bool     `json:"guides,omitempty"`

	// Pages limits rendering to the given page numbers. Empty means
	// all pages. JSON output always covers the whole document.
	Pages []int `json:"pages,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults. The
// method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Estimator == "" {
		o.Estimator = DefaultEstimator
	}
	if !ValidEstimators[o.Estimator] {
		return fmt.Errorf("invalid estimator: %q (must be one of: measure, analytic)", o.Estimator)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return fmt.Errorf("invalid format: %q (must be one of: svg, png, json)", f)
		}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return fmt.Errorf("invalid scale: %v", o.Scale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// PagesKeyOpts returns cache key options for the pagination stage.
func (o *Options) PagesKeyOpts(geom layout.Geometry) cache.PagesKeyOpts {
	return cache.PagesKeyOpts{
		Estimator:  o.Estimator,
		PageWidth:  geom.PageWidth,
		PageHeight: geom.PageHeight,
		Margin:     geom.Margin,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered page.
func (o *Options) ArtifactKeyOpts(format string, page int) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Page:   page,
		Scale:  o.Scale,
		Guides: o.Guides,
	}
}

// ============================================================================
// Results
// ============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Pages is the paginated document.
	Pages []layout.Page

	// PagesHash is the content hash of the pagination result, usable
	// as a stable identifier for follow-up render requests.
	PagesHash string

	// Artifacts contains rendered outputs keyed by "format:page"
	// (e.g. "svg:1"). The JSON artifact covers the whole run and is
	// keyed simply "json".
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ElementCount  int
	PageCount     int
	NormalizeTime time.Duration
	PaginateTime  time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PagesHit  bool // Whether the pagination result came from cache
	RenderHit bool // Whether all artifacts came from cache
}
