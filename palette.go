package swatch

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
)

// Palette pairs the colours to match in a source image with the colours that
// replace them. Base and Replacement are index-aligned and must be the same
// length. Base entries need not be unique; on duplicates the lowest-indexed
// entry wins. A zero-length palette is legal and swaps nothing.
type Palette struct {
	Base        []RGBA
	Replacement []RGBA
}

var errPaletteMismatch = errors.New("swatch: base and replacement lengths differ")

// NewPalette returns a palette mapping each base colour to the replacement
// colour at the same index.
func NewPalette(base, replacement []RGBA) (*Palette, error) {
	if len(base) != len(replacement) {
		return nil, errPaletteMismatch
	}
	return &Palette{
		Base:        base,
		Replacement: replacement,
	}, nil
}

// Len returns the number of colour pairs in the palette.
func (p *Palette) Len() int {
	return len(p.Base)
}

// lookup builds the packed base to replacement word table. Inserting only on
// the first occurrence of a base colour preserves the rule that the
// lowest-indexed duplicate wins.
func (p *Palette) lookup() map[uint32]uint32 {
	lut := make(map[uint32]uint32, len(p.Base))
	for i, c := range p.Base {
		k := c.pack()
		if _, ok := lut[k]; ok {
			continue
		}
		lut[k] = p.Replacement[i].pack()
	}
	return lut
}

// MarshalBinary encodes the palette as a little-endian uint32 count followed
// by the base then the replacement colours as R,G,B,A quads.
func (p *Palette) MarshalBinary() ([]byte, error) {
	if len(p.Base) != len(p.Replacement) {
		return nil, errPaletteMismatch
	}

	b := new(bytes.Buffer)

	if err := binary.Write(b, binary.LittleEndian, uint32(len(p.Base))); err != nil {
		return nil, err
	}
	if err := binary.Write(b, binary.LittleEndian, p.Base); err != nil {
		return nil, err
	}
	if err := binary.Write(b, binary.LittleEndian, p.Replacement); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// UnmarshalBinary decodes a palette previously encoded with MarshalBinary.
func (p *Palette) UnmarshalBinary(b []byte) error {
	r := bytes.NewReader(b)

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return err
	}
	if int64(r.Len()) != int64(count)*8 {
		return errors.New("swatch: palette data is the wrong length")
	}

	p.Base = make([]RGBA, count)
	p.Replacement = make([]RGBA, count)

	if err := binary.Read(r, binary.LittleEndian, &p.Base); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &p.Replacement); err != nil {
		return err
	}

	return nil
}

// Extract derives a base palette of at most n colours from m using median
// cut quantization and returns it as an identity palette, i.e. with the
// replacement colours equal to the base colours. Editing the replacement
// colours of the result produces a variant palette for m.
func Extract(m image.Image, n int) (*Palette, error) {
	if m == nil {
		return nil, ErrNoSource
	}
	if n < 1 {
		return nil, errors.New("swatch: palette size must be positive")
	}

	q := quantize.MedianCutQuantizer{}
	cp := q.Quantize(make(color.Palette, 0, n), m)

	base := make([]RGBA, len(cp))
	for i, c := range cp {
		nc := color.NRGBAModel.Convert(c).(color.NRGBA)
		base[i] = RGBA{nc.R, nc.G, nc.B, nc.A}
	}

	return &Palette{
		Base:        base,
		Replacement: append(base[:0:0], base...),
	}, nil
}
