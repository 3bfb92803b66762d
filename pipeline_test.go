package swatch

import (
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func writeTestPNG(t *testing.T, file string, pixels []RGBA, width, height int) {
	t.Helper()

	s := newTestSurface(t, width, height, pixels)

	f, err := os.Create(file)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, s))
	require.NoError(t, f.Close())
}

func readTestPNG(t *testing.T, file string) *Surface {
	t.Helper()

	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()

	m, err := png.Decode(f)
	require.NoError(t, err)

	s, err := FromImage(m)
	require.NoError(t, err)
	return s
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sprites"), 0o755))

	writeTestPNG(t, filepath.Join(dir, "player.png"), []RGBA{white, black}, 2, 1)
	writeTestPNG(t, filepath.Join(dir, "sprites", "enemy.png"), []RGBA{white}, 1, 1)
	writeTestPNG(t, filepath.Join(dir, ".hidden.png"), []RGBA{white}, 1, 1)

	p, err := NewPalette([]RGBA{white, black}, []RGBA{blue, red})
	require.NoError(t, err)

	s := New(nil, discardLogger())
	require.NoError(t, s.Batch(dir, p, "_swap"))

	got := readTestPNG(t, filepath.Join(dir, "player_swap.png"))
	assert.Equal(t, []RGBA{blue, red}, surfacePixels(got))

	got = readTestPNG(t, filepath.Join(dir, "sprites", "enemy_swap.png"))
	assert.Equal(t, []RGBA{blue}, surfacePixels(got))

	_, err = os.Stat(filepath.Join(dir, ".hidden_swap.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestBatchRerun(t *testing.T) {
	dir := t.TempDir()

	writeTestPNG(t, filepath.Join(dir, "player.png"), []RGBA{white}, 1, 1)

	p, err := NewPalette([]RGBA{white}, []RGBA{blue})
	require.NoError(t, err)

	s := New(nil, discardLogger())
	require.NoError(t, s.Batch(dir, p, "_swap"))
	require.NoError(t, s.Batch(dir, p, "_swap"))

	// The second run must not recolour the first run's output
	_, err = os.Stat(filepath.Join(dir, "player_swap_swap.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestBatchBadArguments(t *testing.T) {
	s := New(nil, discardLogger())

	assert.Equal(t, ErrNoPalette, s.Batch(t.TempDir(), nil, "_swap"))

	p, err := NewPalette([]RGBA{white}, []RGBA{blue})
	require.NoError(t, err)
	assert.Error(t, s.Batch(t.TempDir(), p, ""))
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "a/player_swap.png", outputName("a/player.png", "_swap"))
	assert.Equal(t, "a/player_swap.png", outputName("a/player.jpg", "_swap"))
	assert.Equal(t, "player_blue.png", outputName("player.tiff", "_blue"))
}
