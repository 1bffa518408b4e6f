package render

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/mvollbrecht/pageflow/pkg/errors"
)

// fontStyle selects one of the embedded typefaces.
type fontStyle int

const (
	styleRegular fontStyle = iota
	styleBold
	styleItalic
)

// faceKey identifies a cached face by style and point size.
type faceKey struct {
	style fontStyle
	size  float64
}

// fontSet owns the parsed typefaces and hands out faces at requested
// point sizes. Faces are rendered at 72 DPI so advances come back in
// points, matching the page coordinate space.
type fontSet struct {
	regular *truetype.Font
	bold    *truetype.Font
	italic  *truetype.Font
	faces   map[faceKey]font.Face
}

func newFontSet() (*fontSet, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontMissing, err, "parse regular font")
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontMissing, err, "parse bold font")
	}
	italic, err := truetype.Parse(goitalic.TTF)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontMissing, err, "parse italic font")
	}
	return &fontSet{
		regular: regular,
		bold:    bold,
		italic:  italic,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

// face returns a cached face for the given style and size.
func (fs *fontSet) face(style fontStyle, size float64) font.Face {
	key := faceKey{style: style, size: size}
	if f, ok := fs.faces[key]; ok {
		return f
	}

	src := fs.regular
	switch style {
	case styleBold:
		src = fs.bold
	case styleItalic:
		src = fs.italic
	}
	f := truetype.NewFace(src, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	fs.faces[key] = f
	return f
}

// Close releases all faces handed out so far.
func (fs *fontSet) Close() error {
	var firstErr error
	for key, f := range fs.faces {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close face %v: %w", key, err)
		}
	}
	fs.faces = make(map[faceKey]font.Face)
	return firstErr
}
