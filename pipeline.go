package swatch

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

func supportedImage(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".png", ".gif", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}

// outputName returns the sibling path the recoloured copy of file is written
// to; the output is always PNG regardless of the input format.
func outputName(file, suffix string) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + suffix + ".png"
}

func (s *Swatch) findImages(ctx context.Context, base, suffix string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !supportedImage(file) {
				return nil
			}

			// Skip anything we produced on a previous run so reruns
			// don't recolour their own output.
			name := strings.TrimSuffix(info.Name(), filepath.Ext(info.Name()))
			if strings.HasSuffix(name, suffix) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (s *Swatch) imageWorker(ctx context.Context, in <-chan string, palette *Palette, suffix string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if err := s.recolour(file, palette, suffix); err != nil {
				errc <- err
				return
			}

			select {
			case <-ctx.Done():
				return
			default:
			}
		}
	}()
	return errc, nil
}

func (s *Swatch) recolour(file string, palette *Palette, suffix string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	dest, err := Apply(m, palette)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	out := outputName(file, suffix)

	g, err := os.Create(out)
	if err != nil {
		return err
	}

	if err := png.Encode(g, dest); err != nil {
		g.Close()
		return err
	}

	if err := g.Close(); err != nil {
		return err
	}

	s.logger.Printf("Recoloured \"%s\" to \"%s\"\n", file, out)

	return nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Batch walks the directory tree rooted at path and writes a recoloured PNG
// copy of every supported image next to the original, named after it with
// the suffix appended. Files are processed concurrently; each individual
// image is still transformed by a single Apply call.
func (s *Swatch) Batch(path string, palette *Palette, suffix string) error {
	if palette == nil {
		return ErrNoPalette
	}
	if suffix == "" {
		return errors.New("swatch: suffix must not be empty")
	}

	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := s.findImages(ctx, dir, suffix)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < 10; i++ {
		errc, err := s.imageWorker(ctx, files, palette, suffix)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
