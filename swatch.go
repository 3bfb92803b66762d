/*
Package swatch implements palette swapping for 2D raster images in the style
popularised by Downwell: every pixel whose colour exactly matches an entry in
a palette's base colours is replaced by the replacement colour at the same
index, and every other pixel is preserved unchanged. A single source asset
can therefore produce any number of visually distinct variants.

The match is bit-exact on all four RGBA channels; there is no nearest-colour
search, no blending and no dithering.
*/
package swatch

import "log"

// Swatch bundles the palette library with a logger for the higher-level
// operations such as batch recolouring a directory tree.
type Swatch struct {
	db     *PaletteDB
	logger *log.Logger
}

func New(db *PaletteDB, logger *log.Logger) *Swatch {
	return &Swatch{
		db:     db,
		logger: logger,
	}
}
