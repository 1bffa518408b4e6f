package layout

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// =============================================================================
// Measurer - Face-Backed Height Estimation
// =============================================================================

// Measurer is the authoritative height estimator: it wraps element text
// with real glyph advance widths read from TrueType faces, so its
// estimates match what the renderer actually draws. It is the engine's
// stand-in for probing a live layout surface.
//
// Estimates are cached per (element key, width). The cache - and the
// underlying faces - are not safe for concurrent use; the layout pass
// is a single synchronous walk, so measurements are serialized by
// construction.
type Measurer struct {
	geom    Geometry
	title   font.Face
	body    font.Face
	caption font.Face
	cache   map[string]float64
	logger  *log.Logger
}

// MeasurerOption configures a Measurer.
type MeasurerOption func(*Measurer)

// WithLogger sets a logger for measurement failure diagnostics.
// Failures are recovered, never surfaced to the caller.
func WithLogger(l *log.Logger) MeasurerOption {
	return func(m *Measurer) { m.logger = l }
}

// NewMeasurer creates a measurer with faces for the title, body, and
// caption sizes of the given geometry. The caller should Close it when
// the layout surface is discarded.
func NewMeasurer(geom Geometry, opts ...MeasurerOption) (*Measurer, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}

	newFace := func(f *truetype.Font, size float64) font.Face {
		return truetype.NewFace(f, &truetype.Options{
			Size:    size,
			DPI:     72, // 1pt = 1px so advances come back in points
			Hinting: font.HintingNone,
		})
	}

	m := &Measurer{
		geom:    geom,
		title:   newFace(bold, geom.TitleSize),
		body:    newFace(regular, geom.BodySize),
		caption: newFace(regular, geom.CaptionSize),
		cache:   make(map[string]float64),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Close releases the measurer's font faces.
func (m *Measurer) Close() error {
	for _, f := range []font.Face{m.title, m.body, m.caption} {
		if f != nil {
			f.Close()
		}
	}
	return nil
}

// BodyFace exposes the body text face so a renderer can draw with the
// exact metrics the estimates were computed from.
func (m *Measurer) BodyFace() font.Face { return m.body }

// TitleFace exposes the title face.
func (m *Measurer) TitleFace() font.Face { return m.title }

// CaptionFace exposes the caption face.
func (m *Measurer) CaptionFace() font.Face { return m.caption }

// Estimate returns the measured height of el at the given width.
//
// Measurement must never abort a layout pass: a panic from a malformed
// payload is recovered and replaced with a safe one-line minimum, and
// the failure is logged for diagnostics rather than surfaced.
func (m *Measurer) Estimate(el Element, width float64) (h float64) {
	key := fmt.Sprintf("%s@%.2f", el.Key, width)
	if v, ok := m.cache[key]; ok {
		return v
	}

	defer func() {
		if r := recover(); r != nil {
			if m.logger != nil {
				m.logger.Warn("height measurement failed", "kind", el.Kind, "err", r)
			}
			h = m.geom.BodyLeading
		}
		m.cache[key] = h
	}()

	h = m.measure(el, width)
	return h
}

func (m *Measurer) measure(el Element, width float64) float64 {
	g := m.geom
	switch el.Kind {
	case KindTitle:
		lines := m.wrapCount(m.title, el.Text, width)
		return float64(lines)*g.TitleLeading + g.TitleSpacing

	case KindAuthors:
		return authorBlockHeight(el.Columns, width, g, func(line string, colWidth float64) int {
			return m.wrapCount(m.body, line, colWidth)
		})

	case KindAbstract, KindKeywords, KindParagraph, KindReference:
		lines := m.wrapCount(m.body, el.Text, width)
		return float64(lines)*g.BodyLeading + g.ParagraphSpacing

	case KindSectionHeading, KindSubsectionHeading, KindReferenceHeading:
		lines := m.wrapCount(m.body, el.Text, width)
		return float64(lines)*g.BodyLeading + g.HeadingSpacing

	case KindFigure:
		return figureHeight(el.Figure, g)

	case KindCaption:
		lines := m.wrapCount(m.caption, el.Text, width)
		return float64(lines)*g.CaptionLeading + g.CaptionSpacing

	default:
		return g.BodyLeading
	}
}

// wrapCount counts the lines text occupies at the given width.
func (m *Measurer) wrapCount(face font.Face, text string, width float64) int {
	return len(Wrap(face, text, width))
}

// Wrap breaks text into the lines it occupies at the given width using
// greedy word wrapping with real advance widths from face. Soft line
// breaks each start a new line, and a word wider than the whole region
// is split mid-word rather than overflowing. The result always has at
// least one line, so empty payloads still occupy vertical space.
//
// The renderer draws the exact lines Wrap returns, which is what keeps
// the preview and the height estimates in agreement.
func Wrap(face font.Face, text string, width float64) []string {
	maxW := fixed.Int26_6(width * 64)
	if maxW <= 0 {
		maxW = 1
	}
	spaceW := font.MeasureString(face, " ")

	var lines []string
	for _, soft := range strings.Split(text, "\n") {
		words := strings.Fields(soft)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		var cur strings.Builder
		var curW fixed.Int26_6
		flush := func() {
			lines = append(lines, cur.String())
			cur.Reset()
			curW = 0
		}

		for _, word := range words {
			ww := font.MeasureString(face, word)

			if ww > maxW {
				// Oversized word: flush the current line and
				// split the word by runes to fit.
				if curW > 0 {
					flush()
				}
				for _, chunk := range splitRunes(face, word, maxW) {
					lines = append(lines, chunk)
				}
				continue
			}

			need := ww
			if curW > 0 {
				need += spaceW
			}
			if curW+need > maxW {
				flush()
				cur.WriteString(word)
				curW = ww
			} else {
				if curW > 0 {
					cur.WriteByte(' ')
				}
				cur.WriteString(word)
				curW += need
			}
		}
		if curW > 0 {
			flush()
		}
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// splitRunes breaks a single oversized word into chunks no wider than
// maxW. Every chunk holds at least one rune so the split terminates.
func splitRunes(face font.Face, word string, maxW fixed.Int26_6) []string {
	var chunks []string
	var cur strings.Builder
	var curW fixed.Int26_6

	for _, r := range word {
		rw, _ := face.GlyphAdvance(r)
		if curW+rw > maxW && cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curW = 0
		}
		cur.WriteRune(r)
		curW += rw
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}
