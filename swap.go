package swatch

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
)

var (
	// ErrNoSource is returned by Apply when the source image is nil.
	ErrNoSource = errors.New("swatch: source does not exist")
	// ErrNoPalette is returned by Apply when the palette is nil.
	ErrNoPalette = errors.New("swatch: palette does not exist")
)

// Apply returns a newly allocated copy of source with the palette applied to
// it: every pixel exactly matching a base colour on all four channels is
// replaced by the replacement colour at the same index and every other pixel
// is carried over unchanged. The source is never mutated and the result has
// the same dimensions as the source.
//
// Alpha is part of the match key, so a base colour only matches pixels with
// exactly the same alpha. Where the base colours contain duplicates the
// lowest-indexed entry wins. The caller must guarantee nothing mutates the
// source for the duration of the call; the result is exclusively the
// caller's.
func Apply(source image.Image, palette *Palette) (*Surface, error) {
	if source == nil {
		return nil, ErrNoSource
	}
	if palette == nil {
		return nil, ErrNoPalette
	}
	if len(palette.Base) != len(palette.Replacement) {
		return nil, errPaletteMismatch
	}

	b := source.Bounds()
	dest, err := NewSurface(b.Dx(), b.Dy())
	if err != nil {
		return nil, fmt.Errorf("swatch: failed to create destination surface: %w", err)
	}

	src, err := FromImage(source)
	if err != nil {
		return nil, fmt.Errorf("swatch: failed to convert surface: %w", err)
	}

	lut := palette.lookup()

	sp, dp := src.pix, dest.pix
	for i := 0; i < len(sp); i += 4 {
		w := binary.NativeEndian.Uint32(sp[i : i+4])
		if r, ok := lut[w]; ok {
			binary.NativeEndian.PutUint32(dp[i:i+4], r)
		} else {
			copy(dp[i:i+4], sp[i:i+4])
		}
	}

	return dest, nil
}
