// Package layout implements the document layout and pagination engine
// for IEEE-style two-column conference papers.
//
// The engine computes, without any server round-trip, how a document
// would flow onto physical US-Letter pages so the on-screen preview
// matches the externally generated export. It runs as a single
// synchronous pass over the document model:
//
//	document → Normalize → Estimator (per element) → Paginate → []Page
//
// # Architecture
//
// The pipeline consists of four parts:
//
//   - Geometry: immutable physical page constants (8.5×11in, 0.75in
//     margins, two columns) expressed in points.
//   - Normalize: flattens the document model into an ordered list of
//     content elements, each tagged with a placement class and break
//     hints.
//   - Estimator: predicts an element's rendered height for a given
//     region width. Two implementations exist: Measurer (real glyph
//     metrics from a TrueType face, the authoritative strategy) and
//     Analytic (character-count approximation for headless contexts).
//   - Paginate: assigns elements to pages using strict capacity-based
//     breaking, honoring force-break and keep-with-next hints.
//
// The engine never reorders content, never splits an element across
// pages, and always produces at least one page - there is no fatal
// error path, because the output backs a live preview that must never
// go blank.
//
// # Usage
//
//	geom := layout.Letter()
//	els := layout.Normalize(doc, geom)
//	est := layout.NewAnalytic(geom)
//	pages := layout.Paginate(els, est, geom)
//	for _, p := range pages {
//	    left, right := layout.SplitColumns(p, est, geom)
//	    // draw header, left column, right column
//	}
package layout
