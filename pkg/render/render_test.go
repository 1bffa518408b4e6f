package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/mvollbrecht/pageflow/pkg/layout"
)

func TestRenderSVG(t *testing.T) {
	tests := []struct {
		name     string
		page     layout.Page
		opts     []Option
		contains []string
		excludes []string
	}{
		{
			name: "text and styles",
			page: layout.Page{
				Number: 1,
				Header: []layout.Element{
					{Kind: layout.KindTitle, Text: "Paper Title", Key: "t"},
					{Kind: layout.KindKeywords, Text: "Keywords: layout", Key: "k"},
				},
				Body: []layout.Element{
					{Kind: layout.KindParagraph, Text: "Body text here.", Key: "p"},
				},
				HeaderHeight: 60,
				BodyHeight:   22,
			},
			contains: []string{
				"<svg", "Paper Title", `font-weight="bold"`,
				`font-style="italic"`, "Body text here.",
			},
		},
		{
			name: "markup is escaped",
			page: layout.Page{
				Number: 1,
				Body: []layout.Element{
					{Kind: layout.KindParagraph, Text: "a < b && b > c", Key: "p"},
				},
				BodyHeight: 22,
			},
			contains: []string{"a &lt; b &amp;&amp; b &gt; c"},
			excludes: []string{"a < b"},
		},
		{
			name: "missing figure payload draws a box",
			page: layout.Page{
				Number: 1,
				Body: []layout.Element{
					{Kind: layout.KindFigure, Figure: &layout.Figure{Width: 180}, Key: "f"},
					{Kind: layout.KindCaption, Text: "Fig. 1: empty", Key: "c"},
				},
				BodyHeight: 150,
			},
			contains: []string{`fill="#f4f4f4"`, "Fig. 1: empty"},
			excludes: []string{"<image"},
		},
		{
			name: "guides",
			page: layout.Page{Number: 1},
			opts: []Option{WithGuides()},
			contains: []string{
				"<line", `stroke="#ccd"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := string(RenderSVG(tt.page, tt.opts...))
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("SVG missing %q:\n%s", want, out)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(out, bad) {
					t.Errorf("SVG should not contain %q", bad)
				}
			}
		})
	}
}

func TestRenderSVGEmbedsFigureData(t *testing.T) {
	data := encodePNGFixture(t, 3, 2)
	p := layout.Page{
		Number: 1,
		Body: []layout.Element{
			{Kind: layout.KindFigure, Figure: &layout.Figure{Data: data, Width: 129.6}, Key: "f"},
		},
		BodyHeight: 100,
	}
	out := string(RenderSVG(p))
	if !strings.Contains(out, "data:image;base64,") {
		t.Errorf("bare payload should be wrapped into a data URI:\n%s", out)
	}
}

func TestRenderPNG(t *testing.T) {
	p := layout.Page{
		Number: 1,
		Header: []layout.Element{
			{Kind: layout.KindTitle, Text: "Paper Title", Key: "t"},
		},
		Body: []layout.Element{
			{Kind: layout.KindParagraph, Text: "Some body text.", Key: "p"},
			{Kind: layout.KindFigure, Figure: &layout.Figure{Data: encodePNGFixture(t, 4, 4), Width: 86.4}, Key: "f"},
		},
		HeaderHeight: 41,
		BodyHeight:   80,
	}

	out, err := RenderPNG(p, WithScale(1.0))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	g := layout.Letter()
	if cfg.Width != int(g.PageWidth) || cfg.Height != int(g.PageHeight) {
		t.Errorf("dimensions = %dx%d, want %.0fx%.0f", cfg.Width, cfg.Height, g.PageWidth, g.PageHeight)
	}
}

func TestRenderPNGScale(t *testing.T) {
	out, err := RenderPNG(layout.Page{Number: 1}, WithScale(2.0))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	g := layout.Letter()
	if cfg.Width != int(g.PageWidth*2) {
		t.Errorf("width = %d, want %.0f", cfg.Width, g.PageWidth*2)
	}
}

func TestRenderPNGBadFigurePayload(t *testing.T) {
	p := layout.Page{
		Number: 1,
		Body: []layout.Element{
			{Kind: layout.KindFigure, Figure: &layout.Figure{Data: "not base64!!!", Width: 180}, Key: "f"},
		},
		BodyHeight: 150,
	}
	if _, err := RenderPNG(p, WithScale(1.0)); err != nil {
		t.Fatalf("bad figure payload should fall back to a placeholder, got %v", err)
	}
}

func TestRenderPNGRejectsZeroScale(t *testing.T) {
	if _, err := RenderPNG(layout.Page{Number: 1}, WithScale(0)); err == nil {
		t.Fatal("expected error for zero scale")
	}
}

func TestDecodeFigure(t *testing.T) {
	valid := encodePNGFixture(t, 2, 2)

	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"bare base64", valid, false},
		{"data URI", "data:image/png;base64," + valid, false},
		{"empty", "", true},
		{"garbage", "%%%", true},
		{"valid base64 not an image", base64.StdEncoding.EncodeToString([]byte("hello")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeFigure(tt.data)
			if (err != nil) != tt.wantErr {
				t.Errorf("decodeFigure() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// encodePNGFixture returns a small solid PNG as bare base64.
func encodePNGFixture(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 90, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}
