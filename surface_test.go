package swatch

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSurface(t *testing.T) {
	s, err := NewSurface(3, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Width())
	assert.Equal(t, 2, s.Height())
	require.Len(t, s.Pix(), 3*2*4)
	for _, b := range s.Pix() {
		require.Equal(t, uint8(0), b)
	}
}

func TestNewSurfaceEmpty(t *testing.T) {
	for _, d := range []struct{ w, h int }{{0, 0}, {0, 5}, {5, 0}} {
		s, err := NewSurface(d.w, d.h)
		require.NoError(t, err)
		assert.Equal(t, d.w, s.Width())
		assert.Equal(t, d.h, s.Height())
		assert.Len(t, s.Pix(), 0)
	}
}

func TestNewSurfaceInvalid(t *testing.T) {
	_, err := NewSurface(-1, 2)
	assert.Error(t, err)

	_, err = NewSurface(2, -1)
	assert.Error(t, err)

	big := math.MaxInt / 8
	_, err = NewSurface(big, big)
	assert.Error(t, err)
}

func TestFromImageNRGBA(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	m.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	m.SetNRGBA(1, 0, color.NRGBA{0, 255, 0, 128})
	m.SetNRGBA(0, 1, color.NRGBA{0, 0, 255, 255})
	m.SetNRGBA(1, 1, color.NRGBA{10, 20, 30, 0})

	s, err := FromImage(m)
	require.NoError(t, err)

	assert.Equal(t, RGBA{255, 0, 0, 255}, s.RGBAAt(0, 0))
	assert.Equal(t, RGBA{0, 255, 0, 128}, s.RGBAAt(1, 0))
	assert.Equal(t, RGBA{0, 0, 255, 255}, s.RGBAAt(0, 1))
	assert.Equal(t, RGBA{10, 20, 30, 0}, s.RGBAAt(1, 1))
}

func TestFromImageSubImage(t *testing.T) {
	// A sub-image has a non-zero origin and a stride wider than its
	// bounds, both of which the fast path must honour
	m := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			m.SetNRGBA(x, y, color.NRGBA{uint8(x), uint8(y), 0, 255})
		}
	}

	sub := m.SubImage(image.Rect(2, 3, 5, 6)).(*image.NRGBA)

	s, err := FromImage(sub)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Width())
	assert.Equal(t, 3, s.Height())
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, RGBA{uint8(x + 2), uint8(y + 3), 0, 255}, s.RGBAAt(x, y))
		}
	}
}

func TestFromImageGeneric(t *testing.T) {
	p := color.Palette{
		color.NRGBA{0, 0, 0, 255},
		color.NRGBA{255, 255, 255, 255},
	}
	m := image.NewPaletted(image.Rect(0, 0, 2, 1), p)
	m.SetColorIndex(0, 0, 0)
	m.SetColorIndex(1, 0, 1)

	s, err := FromImage(m)
	require.NoError(t, err)

	assert.Equal(t, RGBA{0, 0, 0, 255}, s.RGBAAt(0, 0))
	assert.Equal(t, RGBA{255, 255, 255, 255}, s.RGBAAt(1, 0))
}

func TestFromImageIndependent(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	m.SetNRGBA(0, 0, color.NRGBA{1, 2, 3, 4})

	s, err := FromImage(m)
	require.NoError(t, err)

	m.SetNRGBA(0, 0, color.NRGBA{5, 6, 7, 8})

	assert.Equal(t, RGBA{1, 2, 3, 4}, s.RGBAAt(0, 0))
}

func TestFromImageSurface(t *testing.T) {
	s, err := NewSurface(1, 1)
	require.NoError(t, err)
	s.SetRGBA(0, 0, RGBA{1, 2, 3, 4})

	dup, err := FromImage(s)
	require.NoError(t, err)

	s.SetRGBA(0, 0, RGBA{5, 6, 7, 8})

	assert.Equal(t, RGBA{1, 2, 3, 4}, dup.RGBAAt(0, 0))
}

func TestFromImageNil(t *testing.T) {
	_, err := FromImage(nil)
	assert.Error(t, err)
}

func TestSurfaceImage(t *testing.T) {
	s, err := NewSurface(2, 2)
	require.NoError(t, err)
	s.SetRGBA(1, 0, RGBA{9, 8, 7, 6})

	assert.Equal(t, image.Rect(0, 0, 2, 2), s.Bounds())
	assert.Equal(t, color.NRGBAModel, s.ColorModel())
	assert.Equal(t, color.NRGBA{9, 8, 7, 6}, s.At(1, 0))
}

func TestSurfaceOutOfBounds(t *testing.T) {
	s, err := NewSurface(2, 2)
	require.NoError(t, err)

	before := append(s.Pix()[:0:0], s.Pix()...)

	for _, c := range []struct{ x, y int }{
		{-1, 0}, {2, 0}, {0, -1}, {0, 2}, {-10, -10}, {10, 10},
	} {
		s.SetRGBA(c.x, c.y, RGBA{255, 255, 255, 255})
		assert.Equal(t, RGBA{}, s.RGBAAt(c.x, c.y))
	}

	assert.Equal(t, before, s.Pix())
}

func TestSurfaceClone(t *testing.T) {
	s, err := NewSurface(1, 1)
	require.NoError(t, err)
	s.SetRGBA(0, 0, RGBA{1, 2, 3, 4})

	dup := s.Clone()
	dup.SetRGBA(0, 0, RGBA{5, 6, 7, 8})

	assert.Equal(t, RGBA{1, 2, 3, 4}, s.RGBAAt(0, 0))
	assert.Equal(t, RGBA{5, 6, 7, 8}, dup.RGBAAt(0, 0))
}
