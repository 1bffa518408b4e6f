// Package render turns paginated pages into visual artifacts.
//
// # Overview
//
// This package draws the pages produced by [layout.Paginate] as page
// previews. It provides:
//
//   - SVG output via [RenderSVG] (vector, embeds figures as data URIs)
//   - PNG output via [RenderPNG] (raster, drawn with fogleman/gg)
//
// Both sinks share a placement pass that walks a page in reading order
// and emits positioned text runs and image boxes. The placement pass
// wraps text with the same font faces the measuring estimator uses, so
// the preview never disagrees with the heights that drove pagination.
//
// # Usage
//
//	pages := layout.Paginate(els, est, geom)
//	svg := render.RenderSVG(pages[0])
//	png, err := render.RenderPNG(pages[0], render.WithScale(2.0))
//
// Figures carry base64 payloads. A payload that fails to decode is
// drawn as a crossed placeholder box of the same dimensions, so a bad
// image never shifts the rest of the page.
package render
