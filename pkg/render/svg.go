package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/mvollbrecht/pageflow/pkg/layout"
)

// ============================================================================
// Options
// ============================================================================

// Option configures page rendering.
type Option func(*renderer)

type renderer struct {
	geom   layout.Geometry
	est    layout.Estimator
	scale  float64
	guides bool
}

// WithGeometry overrides the page geometry (default letter).
func WithGeometry(g layout.Geometry) Option { return func(r *renderer) { r.geom = g } }

// WithEstimator sets the estimator used to balance body columns. The
// caller should pass the same estimator pagination ran with; the
// default is a fresh analytic estimator.
func WithEstimator(est layout.Estimator) Option { return func(r *renderer) { r.est = est } }

// WithGuides draws the margin box and column boundaries.
func WithGuides() Option { return func(r *renderer) { r.guides = true } }

// WithScale sets the raster scale factor for PNG output (default 2.0
// for 2x resolution). SVG output is resolution independent and
// ignores it.
func WithScale(s float64) Option { return func(r *renderer) { r.scale = s } }

func newRenderer(opts ...Option) *renderer {
	r := &renderer{geom: layout.Letter(), scale: 2.0}
	for _, opt := range opts {
		opt(r)
	}
	if r.est == nil {
		r.est = layout.NewAnalytic(r.geom)
	}
	return r
}

// ============================================================================
// SVG sink
// ============================================================================

// RenderSVG renders one page as a standalone SVG document. Figures are
// embedded as data URIs; a payload the browser cannot decode simply
// shows as an empty box, so no decoding happens here.
func RenderSVG(p layout.Page, opts ...Option) []byte {
	r := newRenderer(opts...)
	g := r.geom

	fonts, err := newFontSet()
	if err != nil {
		// The embedded gofont data failed to parse, which means the
		// binary itself is broken. Return an empty page rather than
		// panicking inside a render call.
		return renderEmptySVG(g)
	}
	defer fonts.Close()

	f := buildFrame(p, g, fonts, r.est)

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		g.PageWidth, g.PageHeight, g.PageWidth, g.PageHeight)
	fmt.Fprintf(&buf,
		`  <rect width="%.0f" height="%.0f" fill="white"/>`+"\n", g.PageWidth, g.PageHeight)

	if r.guides {
		renderGuides(&buf, g)
	}

	for _, img := range f.images {
		renderSVGImage(&buf, img)
	}
	for _, t := range f.texts {
		renderSVGText(&buf, t)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderEmptySVG(g layout.Geometry) []byte {
	return fmt.Appendf(nil,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f"><rect width="%.0f" height="%.0f" fill="white"/></svg>`+"\n",
		g.PageWidth, g.PageHeight, g.PageWidth, g.PageHeight)
}

func renderGuides(buf *bytes.Buffer, g layout.Geometry) {
	fmt.Fprintf(buf,
		`  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#ccd" stroke-width="0.5"/>`+"\n",
		g.Margin, g.Margin, g.ContentWidth(), g.ContentHeight())
	mid := g.Margin + g.ColumnWidth() + g.ColumnGap/2
	fmt.Fprintf(buf,
		`  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#ccd" stroke-width="0.5"/>`+"\n",
		mid, g.Margin, mid, g.Margin+g.ContentHeight())
}

func renderSVGImage(buf *bytes.Buffer, img imageOp) {
	href := img.Data
	if href != "" && !strings.HasPrefix(href, "data:") {
		href = "data:image;base64," + href
	}
	if href == "" {
		fmt.Fprintf(buf,
			`  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#f4f4f4" stroke="#999" stroke-width="0.5"/>`+"\n",
			img.X, img.Y, img.W, img.H)
		return
	}
	fmt.Fprintf(buf,
		`  <image x="%.1f" y="%.1f" width="%.1f" height="%.1f" preserveAspectRatio="xMidYMid meet" href="%s"/>`+"\n",
		img.X, img.Y, img.W, img.H, href)
}

func renderSVGText(buf *bytes.Buffer, t textOp) {
	var esc bytes.Buffer
	xml.EscapeText(&esc, []byte(t.Text))

	anchor := "start"
	if t.Anchor >= 0.5 {
		anchor = "middle"
	}
	style := ""
	switch t.Style {
	case styleBold:
		style = ` font-weight="bold"`
	case styleItalic:
		style = ` font-style="italic"`
	}
	fmt.Fprintf(buf,
		`  <text x="%.1f" y="%.1f" font-family="Times New Roman, serif" font-size="%.1f" text-anchor="%s"%s>%s</text>`+"\n",
		t.X, t.Y, t.Size, anchor, style, esc.String())
}
