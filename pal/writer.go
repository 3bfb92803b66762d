package pal

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/bodgit/swatch"
)

// Encode writes the palette to w in the swatch palette file format.
func Encode(w io.Writer, p *swatch.Palette) error {
	if p == nil {
		return swatch.ErrNoPalette
	}
	if len(p.Base) != len(p.Replacement) {
		return fmt.Errorf("pal: base and replacement lengths differ")
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, magic)
	fmt.Fprintln(bw, p.Len())
	for i := range p.Base {
		fmt.Fprintf(bw, "%s %s\n", p.Base[i].Hex(), p.Replacement[i].Hex())
	}

	return bw.Flush()
}

// EncodeFile writes the palette to the named file, creating or truncating
// it.
func EncodeFile(file string, p *swatch.Palette) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if err := Encode(f, p); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
