package layout

import (
	"math"
	"strings"
	"unicode/utf8"
)

// =============================================================================
// Height Estimation
// =============================================================================

// Estimator predicts the rendered height of a content element when laid
// out at the given region width. Heights are in points, the same unit
// as Geometry.
//
// Implementations must be monotonic in width: narrowing the region must
// never decrease the estimated height. The paginator's capacity checks
// rely on this.
//
// The engine ships two implementations: Measurer, which reads real
// glyph metrics from a TrueType face and is authoritative whenever a
// rendering surface exists, and Analytic, a character-count
// approximation for headless contexts such as servers and tests.
// The estimator is injected into Paginate rather than reached for
// globally, so the paginator can always be exercised headlessly.
type Estimator interface {
	Estimate(el Element, width float64) float64
}

// Analytic estimates heights from character counts, the region width,
// and an average glyph width derived from the font size. It needs no
// font data and no rendering surface.
type Analytic struct {
	geom Geometry
}

// NewAnalytic creates an analytic estimator for the given geometry.
func NewAnalytic(geom Geometry) Analytic {
	return Analytic{geom: geom}
}

// avgGlyphFactor approximates the average advance width of body text as
// a fraction of the font size. Serif faces at small sizes average close
// to half an em.
const avgGlyphFactor = 0.5

// Estimate returns the expected height of el at the given width.
func (a Analytic) Estimate(el Element, width float64) float64 {
	g := a.geom
	switch el.Kind {
	case KindTitle:
		lines := wrappedLines(el.Text, width, g.TitleSize*avgGlyphFactor)
		return float64(lines)*g.TitleLeading + g.TitleSpacing

	case KindAuthors:
		return authorBlockHeight(el.Columns, width, g, func(line string, colWidth float64) int {
			return wrappedLines(line, colWidth, g.BodySize*avgGlyphFactor)
		})

	case KindAbstract, KindKeywords, KindParagraph, KindReference:
		lines := wrappedLines(el.Text, width, g.BodySize*avgGlyphFactor)
		return float64(lines)*g.BodyLeading + g.ParagraphSpacing

	case KindSectionHeading, KindSubsectionHeading, KindReferenceHeading:
		lines := wrappedLines(el.Text, width, g.BodySize*avgGlyphFactor)
		return float64(lines)*g.BodyLeading + g.HeadingSpacing

	case KindFigure:
		return figureHeight(el.Figure, g)

	case KindCaption:
		lines := wrappedLines(el.Text, width, g.CaptionSize*avgGlyphFactor)
		return float64(lines)*g.CaptionLeading + g.CaptionSpacing

	default:
		// Unknown kinds still occupy one line so the layout pass
		// never aborts.
		return g.BodyLeading
	}
}

// wrappedLines estimates the wrapped line count of text at the given
// width: characters-per-line is derived from the width and the average
// glyph width, and soft line breaks each start a new line. The result
// is at least 1.
func wrappedLines(text string, width, glyphWidth float64) int {
	cpl := 1
	if glyphWidth > 0 {
		if c := int(width / glyphWidth); c > 1 {
			cpl = c
		}
	}

	lines := 0
	for _, soft := range strings.Split(text, "\n") {
		n := utf8.RuneCountInString(soft)
		if n == 0 {
			lines++
			continue
		}
		lines += (n + cpl - 1) / cpl
	}
	if lines < 1 {
		lines = 1
	}
	return lines
}

// authorBlockHeight computes the author block's height: authors sit in
// equal-width side-by-side cells, so the block is as tall as its
// tallest cell plus the trailing spacing. lineCount maps one detail
// line at the cell width to its wrapped line count.
func authorBlockHeight(cols [][]string, width float64, g Geometry, lineCount func(string, float64) int) float64 {
	if len(cols) == 0 {
		return 0
	}
	colWidth := width / float64(len(cols))

	var tallest float64
	for _, col := range cols {
		var h float64
		for _, line := range col {
			h += float64(lineCount(line, colWidth)) * (g.BodyLeading + g.AuthorLineSpacing)
		}
		if h > tallest {
			tallest = h
		}
	}
	return tallest + g.AuthorSpacing
}

// figureHeight computes a figure's height from its bucketed display
// width assuming the exporter's nominal 3:2 aspect, capped at the
// maximum figure height, plus the surrounding spacing. The image bytes
// are deliberately not decoded here: estimation must work without any
// rendering surface, and the same bucket yields the same height. The
// buckets are all narrower than a body column, so the height does not
// depend on the region width and the monotonicity contract holds
// trivially.
func figureHeight(fig *Figure, g Geometry) float64 {
	w := g.FigureWidth("")
	if fig != nil && fig.Width > 0 {
		w = fig.Width
	}
	h := math.Min(w/1.5, g.MaxFigureHeight)
	return h + g.FigureSpacing
}
