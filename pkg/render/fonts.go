package render

import (
	"fmt"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// DefaultFontSize is the point size used when a FontConfig leaves it unset.
const DefaultFontSize = 13.0

// FontConfig names the TrueType files to paint with. An empty path keeps
// the built-in bitmap face for that style.
type FontConfig struct {
	Regular string
	Italic  string
	Size    float64
}

// Faces holds loaded font faces. A Faces must not be shared between
// goroutines painting at the same time.
type Faces struct {
	regular font.Face
	italic  font.Face
}

// LoadFaces loads the faces named by cfg.
func LoadFaces(cfg FontConfig) (*Faces, error) {
	size := cfg.Size
	if size <= 0 {
		size = DefaultFontSize
	}
	f := &Faces{}
	var err error
	if cfg.Regular != "" {
		if f.regular, err = gg.LoadFontFace(cfg.Regular, size); err != nil {
			return nil, fmt.Errorf("render: loading regular font: %w", err)
		}
	}
	if cfg.Italic != "" {
		if f.italic, err = gg.LoadFontFace(cfg.Italic, size); err != nil {
			return nil, fmt.Errorf("render: loading italic font: %w", err)
		}
	}
	return f, nil
}

// face picks the face for a style, falling back to regular. Nil means the
// built-in face.
func (f *Faces) face(italic bool) font.Face {
	if f == nil {
		return nil
	}
	if italic && f.italic != nil {
		return f.italic
	}
	return f.regular
}

// Option configures Image and WritePNG.
type Option func(*painter)

// WithFaces paints text with faces instead of the built-in bitmap face.
func WithFaces(faces *Faces) Option {
	return func(p *painter) { p.faces = faces }
}
