package render

import (
	"image"
	"io"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

const (
	pagePadding   = 8.0
	columnSpacing = 6.0
	lineSpacing   = 4.0
	controlInset  = 4.0
)

// painter draws widgets with gg's built-in bitmap face unless faces are
// set.
type painter struct {
	dc    *gg.Context
	faces *Faces
}

// Image paints w onto a white canvas. A height of zero sizes the canvas to
// the content.
func Image(w Widget, width, height int, opts ...Option) *image.RGBA {
	return newCanvas(w, width, height, opts).Image().(*image.RGBA)
}

// WritePNG paints w and encodes the result as PNG.
func WritePNG(out io.Writer, w Widget, width, height int, opts ...Option) error {
	return newCanvas(w, width, height, opts).EncodePNG(out)
}

func newCanvas(w Widget, width, height int, opts []Option) *gg.Context {
	p := &painter{}
	for _, opt := range opts {
		opt(p)
	}
	if height <= 0 {
		p.dc = gg.NewContext(1, 1)
		p.useFace(false)
		_, h := p.size(w)
		height = int(math.Ceil(h + 2*pagePadding))
	}
	p.dc = gg.NewContext(width, height)
	p.dc.SetRGB(1, 1, 1)
	p.dc.Clear()
	p.useFace(false)
	p.draw(w, pagePadding, pagePadding)
	return p.dc
}

// useFace switches to the face of the given style.
func (p *painter) useFace(italic bool) {
	f := p.faces.face(italic)
	if f == nil {
		f = basicfont.Face7x13
	}
	p.dc.SetFontFace(f)
}

func (p *painter) lineHeight() float64 {
	return p.dc.FontHeight() + lineSpacing
}

func (p *painter) size(w Widget) (float64, float64) {
	switch w := w.(type) {
	case *Text:
		p.useFace(w.Italic)
		defer p.useFace(false)
		tw, _ := p.dc.MeasureString(w.Text)
		return tw, p.lineHeight()
	case *Link:
		tw, _ := p.dc.MeasureString(w.Label)
		return tw, p.lineHeight()
	case *Button:
		tw, _ := p.dc.MeasureString(w.Label)
		return tw + 4*controlInset, p.lineHeight() + 2*controlInset
	case *TextInput:
		tw, _ := p.dc.MeasureString(strings.Repeat("M", w.Width))
		return tw + 2*controlInset, p.lineHeight() + 2*controlInset
	case *Container:
		var width, height float64
		n := 0
		for _, child := range w.Children {
			cw, ch := p.size(child)
			if cw == 0 && ch == 0 {
				continue
			}
			if w.Orientation == Vertical {
				width = math.Max(width, cw)
				height += ch
			} else {
				if n > 0 {
					width += columnSpacing
				}
				width += cw
				height = math.Max(height, ch)
			}
			n++
		}
		return width, height
	}
	return 0, 0
}

func (p *painter) draw(w Widget, x, y float64) {
	dc := p.dc
	switch w := w.(type) {
	case *Text:
		dc.SetRGB(0, 0, 0)
		if w.Italic {
			p.useFace(true)
			defer p.useFace(false)
			if p.faces.face(true) == p.faces.face(false) {
				// No italic face to tell the text apart.
				dc.SetRGB(0.35, 0.35, 0.35)
			}
		}
		dc.DrawStringAnchored(w.Text, x, y, 0, 1)
	case *Link:
		tw, _ := dc.MeasureString(w.Label)
		dc.SetRGB(0.02, 0.27, 0.68)
		dc.DrawStringAnchored(w.Label, x, y, 0, 1)
		underline := y + dc.FontHeight() + 1
		dc.DrawLine(x, underline, x+tw, underline)
		dc.SetLineWidth(1)
		dc.Stroke()
	case *Button:
		bw, bh := p.size(w)
		dc.SetRGB(0.9, 0.9, 0.9)
		dc.DrawRoundedRectangle(x, y, bw, bh-lineSpacing, 3)
		dc.FillPreserve()
		dc.SetRGB(0.5, 0.5, 0.5)
		dc.SetLineWidth(1)
		dc.Stroke()
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(w.Label, x+2*controlInset, y+controlInset, 0, 1)
	case *TextInput:
		iw, ih := p.size(w)
		dc.SetRGB(1, 1, 1)
		dc.DrawRectangle(x, y, iw, ih-lineSpacing)
		dc.FillPreserve()
		dc.SetRGB(0.5, 0.5, 0.5)
		dc.SetLineWidth(1)
		dc.Stroke()
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(w.Value, x+controlInset, y+controlInset, 0, 1)
	case *Container:
		for _, child := range w.Children {
			cw, ch := p.size(child)
			if cw == 0 && ch == 0 {
				continue
			}
			p.draw(child, x, y)
			if w.Orientation == Vertical {
				y += ch
			} else {
				x += cw + columnSpacing
			}
		}
	}
}
