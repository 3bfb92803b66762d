package swatch

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// RGBA is an 8-bit per channel colour with alpha. Two colours are equal iff
// all four components are equal; no colour space is assumed and the alpha is
// not premultiplied.
type RGBA struct {
	R, G, B, A uint8
}

// pack returns the canonical 32-bit pixel word for c. The in-memory byte
// sequence of the word is always R,G,B,A; only the numeric value follows the
// host byte order, so packed words compare equal exactly when the colours do.
func (c RGBA) pack() uint32 {
	return binary.NativeEndian.Uint32([]byte{c.R, c.G, c.B, c.A})
}

// unpack is the inverse of pack.
func unpack(w uint32) RGBA {
	var b [4]byte
	binary.NativeEndian.PutUint32(b[:], w)
	return RGBA{b[0], b[1], b[2], b[3]}
}

// ParseHex parses a colour written as RRGGBB or RRGGBBAA hexadecimal with an
// optional leading '#'. An omitted alpha is 255.
func ParseHex(s string) (RGBA, error) {
	t := strings.TrimPrefix(s, "#")

	switch len(t) {
	case 6, 8:
	default:
		return RGBA{}, fmt.Errorf("invalid colour %q", s)
	}

	v, err := hex.DecodeString(t)
	if err != nil {
		return RGBA{}, fmt.Errorf("invalid colour %q", s)
	}

	c := RGBA{R: v[0], G: v[1], B: v[2], A: 0xff}
	if len(v) == 4 {
		c.A = v[3]
	}

	return c, nil
}

// Hex returns c in the #RRGGBBAA notation understood by ParseHex.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
