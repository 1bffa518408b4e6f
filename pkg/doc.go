// Package pkg provides the core libraries for Pageflow document pagination.
//
// # Overview
//
// Pageflow transforms structured manuscripts into paginated two-column pages
// suitable for conference-style proceedings. The pkg directory is organized
// into five main areas:
//
//  1. [paper] - Document model (titles, authors, sections, figures, references)
//  2. [layout] - Normalization, height estimation, and pagination
//  3. [render] - SVG and PNG page rendering
//  4. [pipeline] - Orchestration (normalize → paginate → render) with caching
//  5. [cache] / [store] - Infrastructure (artifact caching, document storage)
//
// # Architecture
//
// The typical data flow through Pageflow:
//
//	JSON manuscript
//	         ↓
//	    [paper] package (decode + validate document)
//	         ↓
//	    [layout] package (normalize → estimate heights → paginate)
//	         ↓
//	    [render] package (place elements, emit SVG/PNG)
//	         ↓
//	    SVG/PNG/JSON output
//
// # Quick Start
//
// Paginate a document and render the first page:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/mvollbrecht/pageflow/pkg/paper"
//	    "github.com/mvollbrecht/pageflow/pkg/pipeline"
//	)
//
//	func main() {
//	    doc, err := paper.ImportJSON("paper.json")
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    runner := pipeline.NewRunner(nil, nil, nil)
//	    defer runner.Close()
//
//	    res, err := runner.Execute(context.Background(), doc, pipeline.Options{
//	        Formats: []string{pipeline.FormatSVG},
//	    })
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    os.WriteFile("page1.svg", res.Artifacts["svg:1"], 0o644)
//	}
//
// # Height Estimation
//
// Pagination needs to know how tall each element will be before placing it.
// Two estimators are available:
//
//   - measure: shapes text with real font metrics (accurate, default)
//   - analytic: closed-form character-count model (fast, no font parsing)
//
// Both charge identical leadings and spacings, so switching estimators only
// changes line-count predictions, never the page grammar.
//
// # Caching
//
// The [pipeline] runner caches at two levels keyed by content hashes:
//
//   - pages: the paginated element placement (24h TTL)
//   - artifacts: rendered SVG/PNG bytes per page (72h TTL)
//
// Backends: local filesystem for the CLI, Redis for the preview service.
//
// [paper]: https://pkg.go.dev/github.com/mvollbrecht/pageflow/pkg/paper
// [layout]: https://pkg.go.dev/github.com/mvollbrecht/pageflow/pkg/layout
// [render]: https://pkg.go.dev/github.com/mvollbrecht/pageflow/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/mvollbrecht/pageflow/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/mvollbrecht/pageflow/pkg/cache
// [store]: https://pkg.go.dev/github.com/mvollbrecht/pageflow/pkg/store
package pkg
