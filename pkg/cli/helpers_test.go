package cli

import (
	"image"
	"image/color"
	"math"
	"path/filepath"
	"testing"
)

var red = color.NRGBA{255, 0, 0, 255}

// ringImage draws a black ring centered in a white size x size image.
func ringImage(size int, outer, inner float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			col := color.NRGBA{255, 255, 255, 255}
			if d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c); d >= inner && d < outer {
				col = color.NRGBA{0, 0, 0, 255}
			}
			img.SetNRGBA(x, y, col)
		}
	}
	return img
}

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// writeFixtures saves a 100x100 ring outline and an 8x8 red pattern as PNGs.
func writeFixtures(t *testing.T) (outline, pattern string) {
	t.Helper()
	dir := t.TempDir()
	outline = filepath.Join(dir, "outline.png")
	pattern = filepath.Join(dir, "pattern.png")
	if err := SaveImage(outline, ringImage(100, 40, 20)); err != nil {
		t.Fatalf("save outline: %v", err)
	}
	if err := SaveImage(pattern, solidImage(8, 8, red)); err != nil {
		t.Fatalf("save pattern: %v", err)
	}
	return outline, pattern
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}
