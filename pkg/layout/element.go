package layout

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// =============================================================================
// Content Element - The Engine's Atomic Layout Unit
// =============================================================================

// Kind identifies what a content element is. It is a closed set: the
// height estimators and the paginator switch over it exhaustively, so
// adding a kind is a compile-visible change rather than a stringly
// typed convention.
type Kind int

const (
	KindTitle Kind = iota
	KindAuthors
	KindAbstract
	KindKeywords
	KindSectionHeading
	KindSubsectionHeading
	KindParagraph
	KindFigure
	KindCaption
	KindReferenceHeading
	KindReference
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindTitle:
		return "title"
	case KindAuthors:
		return "authors"
	case KindAbstract:
		return "abstract"
	case KindKeywords:
		return "keywords"
	case KindSectionHeading:
		return "section-heading"
	case KindSubsectionHeading:
		return "subsection-heading"
	case KindParagraph:
		return "paragraph"
	case KindFigure:
		return "figure"
	case KindCaption:
		return "caption"
	case KindReferenceHeading:
		return "reference-heading"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Figure is the renderable descriptor of an image block: the raw
// base64 payload (possibly with a data-URI prefix) and the bucketed
// display width in points. Decoding is deferred to the renderer, which
// substitutes a placeholder on failure.
type Figure struct {
	Data  string
	Width float64
}

// Element is the engine's internal unit of content. Elements are
// created fresh by Normalize on every layout pass, consumed once by
// Paginate, and discarded - they are never persisted.
type Element struct {
	Kind Kind

	// Text is the rendered payload for textual kinds. Single newlines
	// are soft line breaks within the element.
	Text string

	// Columns holds the author block's per-author line stacks
	// (name first, detail lines after). Only set for KindAuthors.
	Columns [][]string

	// Figure is the renderable descriptor. Only set for KindFigure.
	Figure *Figure

	// Break hints consumed by the paginator.
	ForceBreakBefore bool
	ForceBreakAfter  bool
	KeepWithNext     bool

	// Key is a deterministic cache key for height lookups. Two
	// elements with equal keys have equal heights at equal widths.
	Key string
}

// FullWidth reports the element's placement class: true for the
// single-column header region (title, authors, abstract, keywords),
// false for the two-column body.
func (e Element) FullWidth() bool {
	switch e.Kind {
	case KindTitle, KindAuthors, KindAbstract, KindKeywords:
		return true
	default:
		return false
	}
}

// cacheKey derives a deterministic key from the element's kind and
// payload so repeated estimates of identical content hit the height
// cache.
func cacheKey(kind Kind, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return fmt.Sprintf("%s:%s", kind, hex.EncodeToString(sum[:8]))
}
