package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"strings"

	// Figure payloads arrive in whatever format the author uploaded.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"

	"github.com/mvollbrecht/pageflow/pkg/errors"
	"github.com/mvollbrecht/pageflow/pkg/layout"
)

// RenderPNG renders one page as a PNG raster at the configured scale.
// Figure payloads that fail to decode are drawn as crossed placeholder
// boxes of the same dimensions.
func RenderPNG(p layout.Page, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	g := r.geom
	s := r.scale
	if s <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scale must be positive")
	}

	fonts, err := newFontSet()
	if err != nil {
		return nil, err
	}
	defer fonts.Close()

	f := buildFrame(p, g, fonts, r.est)

	dc := gg.NewContext(int(g.PageWidth*s), int(g.PageHeight*s))
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if r.guides {
		drawGuides(dc, g, s)
	}
	for _, img := range f.images {
		drawImage(dc, img, s)
	}

	dc.SetRGB(0, 0, 0)
	for _, t := range f.texts {
		dc.SetFontFace(fonts.face(t.Style, t.Size*s))
		dc.DrawStringAnchored(t.Text, t.X*s, t.Y*s, t.Anchor, 0)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawGuides(dc *gg.Context, g layout.Geometry, s float64) {
	dc.SetRGB(0.8, 0.8, 0.87)
	dc.SetLineWidth(0.5 * s)
	dc.DrawRectangle(g.Margin*s, g.Margin*s, g.ContentWidth()*s, g.ContentHeight()*s)
	dc.Stroke()
	mid := g.Margin + g.ColumnWidth() + g.ColumnGap/2
	dc.DrawLine(mid*s, g.Margin*s, mid*s, (g.Margin+g.ContentHeight())*s)
	dc.Stroke()
}

// drawImage decodes and draws one figure, falling back to a
// placeholder box when the payload does not decode.
func drawImage(dc *gg.Context, op imageOp, s float64) {
	src, err := decodeFigure(op.Data)
	if err != nil {
		drawPlaceholder(dc, op, s)
		return
	}

	// Fit the image inside the figure box, preserving aspect ratio.
	b := src.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw <= 0 || ih <= 0 {
		drawPlaceholder(dc, op, s)
		return
	}
	fit := op.W / iw
	if h := op.H / ih; h < fit {
		fit = h
	}
	dx := op.X + (op.W-iw*fit)/2
	dy := op.Y + (op.H-ih*fit)/2

	dc.Push()
	dc.Translate(dx*s, dy*s)
	dc.Scale(fit*s, fit*s)
	dc.DrawImage(src, 0, 0)
	dc.Pop()
}

func drawPlaceholder(dc *gg.Context, op imageOp, s float64) {
	x, y, w, h := op.X*s, op.Y*s, op.W*s, op.H*s

	dc.SetRGB(0.96, 0.96, 0.96)
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()

	dc.SetRGB(0.6, 0.6, 0.6)
	dc.SetLineWidth(0.5 * s)
	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()
	dc.DrawLine(x, y, x+w, y+h)
	dc.Stroke()
	dc.DrawLine(x+w, y, x, y+h)
	dc.Stroke()
}

// decodeFigure decodes a base64 figure payload, accepting both bare
// payloads and data URIs.
func decodeFigure(data string) (image.Image, error) {
	if data == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty figure payload")
	}
	if idx := strings.IndexByte(data, ','); idx >= 0 && strings.HasPrefix(data, "data:") {
		data = data[idx+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode figure payload")
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode figure image")
	}
	return img, nil
}
