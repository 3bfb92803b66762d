package pal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bodgit/swatch"
)

var (
	errBadMagic  = errors.New("pal: not a swatch palette")
	errBadCount  = errors.New("pal: invalid colour count")
	errNotEnough = errors.New("pal: not enough colour pairs")
	errTooMuch   = errors.New("pal: trailing data after colour pairs")
)

type decoder struct {
	s    *bufio.Scanner
	line int
}

// next returns the next line carrying content, skipping blanks and comments.
func (d *decoder) next() (string, bool) {
	for d.s.Scan() {
		d.line++
		t := strings.TrimSpace(d.s.Text())
		if t == "" || strings.HasPrefix(t, ";") {
			continue
		}
		return t, true
	}
	return "", false
}

// Decode reads a palette in the swatch palette file format from r.
func Decode(r io.Reader) (*swatch.Palette, error) {
	d := &decoder{s: bufio.NewScanner(r)}

	t, ok := d.next()
	if !ok || t != magic {
		return nil, errBadMagic
	}

	t, ok = d.next()
	if !ok {
		return nil, errBadCount
	}
	n, err := strconv.Atoi(t)
	if err != nil || n < 0 {
		return nil, errBadCount
	}

	base := make([]swatch.RGBA, 0, n)
	replacement := make([]swatch.RGBA, 0, n)

	for i := 0; i < n; i++ {
		t, ok = d.next()
		if !ok {
			if err := d.s.Err(); err != nil {
				return nil, err
			}
			return nil, errNotEnough
		}

		fields := strings.Fields(t)
		if len(fields) != 2 {
			return nil, fmt.Errorf("pal: line %d: expected a base and a replacement colour", d.line)
		}

		b, err := swatch.ParseHex(fields[0])
		if err != nil {
			return nil, fmt.Errorf("pal: line %d: %w", d.line, err)
		}
		c, err := swatch.ParseHex(fields[1])
		if err != nil {
			return nil, fmt.Errorf("pal: line %d: %w", d.line, err)
		}

		base = append(base, b)
		replacement = append(replacement, c)
	}

	if _, ok = d.next(); ok {
		return nil, errTooMuch
	}
	if err := d.s.Err(); err != nil {
		return nil, err
	}

	return swatch.NewPalette(base, replacement)
}

// DecodeFile reads a palette from the named file.
func DecodeFile(file string) (*swatch.Palette, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}
