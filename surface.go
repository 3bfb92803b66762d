package swatch

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

// Surface is a 2D pixel buffer in the canonical format: 8-bit RGBA, four
// bytes per pixel in R,G,B,A memory order, row-major with no padding between
// rows, so len(Pix()) == Width()*Height()*4 exactly.
//
// Surface implements image.Image so it can be handed straight to the
// standard image encoders.
type Surface struct {
	width  int
	height int
	pix    []uint8
}

var errNoImage = errors.New("no image to convert")

// NewSurface allocates a zero-filled surface of the given dimensions.
// Zero-sized dimensions are legal and produce an empty surface.
func NewSurface(width, height int) (*Surface, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if height > 0 && width > math.MaxInt/4/height {
		return nil, fmt.Errorf("%dx%d surface is too large", width, height)
	}
	return &Surface{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}, nil
}

// FromImage converts an arbitrary image into a canonical surface holding the
// same visible colours. The returned surface is always an independent copy;
// mutating m afterwards never affects it. The caller must guarantee nothing
// mutates m for the duration of the call.
func FromImage(m image.Image) (*Surface, error) {
	if m == nil {
		return nil, errNoImage
	}

	if s, ok := m.(*Surface); ok {
		return s.Clone(), nil
	}

	b := m.Bounds()
	s, err := NewSurface(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	// Already non-premultiplied RGBA, copy row by row honouring the
	// source stride and sub-image offset.
	if n, ok := m.(*image.NRGBA); ok {
		for y := 0; y < s.height; y++ {
			i := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(s.pix[y*s.width*4:(y+1)*s.width*4], n.Pix[i:i+s.width*4])
		}
		return s, nil
	}

	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			c := color.NRGBAModel.Convert(m.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := (y*s.width + x) * 4
			s.pix[i+0] = c.R
			s.pix[i+1] = c.G
			s.pix[i+2] = c.B
			s.pix[i+3] = c.A
		}
	}

	return s, nil
}

// Width returns the width of the surface in pixels.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the height of the surface in pixels.
func (s *Surface) Height() int {
	return s.height
}

// Pix returns the raw pixel data in R,G,B,A order.
func (s *Surface) Pix() []uint8 {
	return s.pix
}

// Clone returns an independent copy of the surface.
func (s *Surface) Clone() *Surface {
	return &Surface{
		width:  s.width,
		height: s.height,
		pix:    append(s.pix[:0:0], s.pix...),
	}
}

// RGBAAt returns the colour of the pixel at (x, y), or the zero RGBA if the
// coordinates are out of bounds.
func (s *Surface) RGBAAt(x, y int) RGBA {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return RGBA{}
	}
	i := (y*s.width + x) * 4
	return RGBA{s.pix[i+0], s.pix[i+1], s.pix[i+2], s.pix[i+3]}
}

// SetRGBA sets the pixel at (x, y). Out of bounds coordinates are ignored.
func (s *Surface) SetRGBA(x, y int, c RGBA) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	i := (y*s.width + x) * 4
	s.pix[i+0] = c.R
	s.pix[i+1] = c.G
	s.pix[i+2] = c.B
	s.pix[i+3] = c.A
}

// At implements the image.Image interface.
func (s *Surface) At(x, y int) color.Color {
	c := s.RGBAAt(x, y)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Bounds implements the image.Image interface.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// ColorModel implements the image.Image interface.
func (s *Surface) ColorModel() color.Model {
	return color.NRGBAModel
}
