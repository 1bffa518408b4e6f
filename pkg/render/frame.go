package render

import (
	"math"

	"golang.org/x/image/font"

	"github.com/mvollbrecht/pageflow/pkg/layout"
)

// ============================================================================
// Draw operations
// ============================================================================

// textOp is a single positioned line of text. X and Y are in points
// from the page's top-left corner, Y being the baseline. Anchor is the
// horizontal anchor within the line (0 left, 0.5 centered).
type textOp struct {
	X, Y   float64
	Text   string
	Size   float64
	Style  fontStyle
	Anchor float64
}

// imageOp is a positioned figure box. Data holds the base64 payload
// exactly as it arrived in the document; the sinks decide how to
// decode or embed it.
type imageOp struct {
	X, Y, W, H float64
	Data       string
}

// frame is the full set of draw operations for one page.
type frame struct {
	texts  []textOp
	images []imageOp
}

// ============================================================================
// Placement
// ============================================================================

// placer walks a page in reading order and accumulates draw operations.
// It advances a cursor element by element using the same leadings and
// spacings the estimators charge, which keeps the drawn page consistent
// with the heights pagination was computed from.
type placer struct {
	geom  layout.Geometry
	fonts *fontSet
	frame frame
}

func buildFrame(p layout.Page, g layout.Geometry, fs *fontSet, est layout.Estimator) frame {
	pl := &placer{geom: g, fonts: fs}

	y := g.Margin
	for _, el := range p.Header {
		y = pl.placeHeader(el, y)
	}

	left, right := layout.SplitColumns(p, est, g)
	bodyTop := g.Margin + p.HeaderHeight
	pl.placeColumn(left, g.Margin, bodyTop)
	pl.placeColumn(right, g.Margin+g.ColumnWidth()+g.ColumnGap, bodyTop)

	return pl.frame
}

// placeHeader draws one full-width header element starting at y and
// returns the cursor below it.
func (pl *placer) placeHeader(el layout.Element, y float64) float64 {
	g := pl.geom
	center := g.PageWidth / 2

	switch el.Kind {
	case layout.KindTitle:
		face := pl.fonts.face(styleBold, g.TitleSize)
		for _, line := range layout.Wrap(face, el.Text, g.ContentWidth()) {
			pl.text(center, y+ascent(face), line, g.TitleSize, styleBold, 0.5)
			y += g.TitleLeading
		}
		return y + g.TitleSpacing

	case layout.KindAuthors:
		return pl.placeAuthors(el, y)

	case layout.KindAbstract:
		face := pl.fonts.face(styleBold, g.BodySize)
		for _, line := range layout.Wrap(face, el.Text, g.ContentWidth()) {
			pl.text(g.Margin, y+ascent(face), line, g.BodySize, styleBold, 0)
			y += g.BodyLeading
		}
		return y + g.ParagraphSpacing

	case layout.KindKeywords:
		face := pl.fonts.face(styleItalic, g.BodySize)
		for _, line := range layout.Wrap(face, el.Text, g.ContentWidth()) {
			pl.text(g.Margin, y+ascent(face), line, g.BodySize, styleItalic, 0)
			y += g.BodyLeading
		}
		return y + g.ParagraphSpacing
	}
	return y
}

// placeAuthors draws the author columns side by side across the
// content width. The first line of each column is the author name,
// the rest are affiliation details set in italic.
func (pl *placer) placeAuthors(el layout.Element, y float64) float64 {
	g := pl.geom
	n := len(el.Columns)
	if n == 0 {
		return y
	}
	colW := g.ContentWidth() / float64(n)
	lineH := g.BodyLeading + g.AuthorLineSpacing

	maxY := y
	for i, col := range el.Columns {
		cx := g.Margin + float64(i)*colW + colW/2
		cy := y
		for j, entry := range col {
			style := styleItalic
			if j == 0 {
				style = styleRegular
			}
			face := pl.fonts.face(style, g.BodySize)
			for _, line := range layout.Wrap(face, entry, colW) {
				pl.text(cx, cy+ascent(face), line, g.BodySize, style, 0.5)
				cy += lineH
			}
		}
		maxY = math.Max(maxY, cy)
	}
	return maxY + g.AuthorSpacing
}

// placeColumn draws body elements top-down within one column.
func (pl *placer) placeColumn(els []layout.Element, x0, top float64) {
	g := pl.geom
	colW := g.ColumnWidth()
	y := top

	for _, el := range els {
		switch el.Kind {
		case layout.KindSectionHeading, layout.KindSubsectionHeading, layout.KindReferenceHeading:
			y += g.HeadingSpacing
			face := pl.fonts.face(styleBold, g.BodySize)
			for _, line := range layout.Wrap(face, el.Text, colW) {
				pl.text(x0, y+ascent(face), line, g.BodySize, styleBold, 0)
				y += g.BodyLeading
			}

		case layout.KindParagraph, layout.KindReference:
			face := pl.fonts.face(styleRegular, g.BodySize)
			for _, line := range layout.Wrap(face, el.Text, colW) {
				pl.text(x0, y+ascent(face), line, g.BodySize, styleRegular, 0)
				y += g.BodyLeading
			}
			y += g.ParagraphSpacing

		case layout.KindFigure:
			if el.Figure != nil {
				w := el.Figure.Width
				h := math.Min(w/1.5, g.MaxFigureHeight)
				pl.image(x0+(colW-w)/2, y, w, h, el.Figure.Data)
				y += h + g.FigureSpacing
			}

		case layout.KindCaption:
			face := pl.fonts.face(styleRegular, g.CaptionSize)
			for _, line := range layout.Wrap(face, el.Text, colW) {
				pl.text(x0+colW/2, y+ascent(face), line, g.CaptionSize, styleRegular, 0.5)
				y += g.CaptionLeading
			}
			y += g.CaptionSpacing
		}
	}
}

func (pl *placer) text(x, y float64, s string, size float64, style fontStyle, anchor float64) {
	if s == "" {
		return
	}
	pl.frame.texts = append(pl.frame.texts, textOp{
		X: x, Y: y, Text: s, Size: size, Style: style, Anchor: anchor,
	})
}

func (pl *placer) image(x, y, w, h float64, data string) {
	pl.frame.images = append(pl.frame.images, imageOp{X: x, Y: y, W: w, H: h, Data: data})
}

// ascent returns the face ascent in points, used to convert a line's
// top edge into a baseline.
func ascent(f font.Face) float64 {
	return float64(f.Metrics().Ascent) / 64
}
