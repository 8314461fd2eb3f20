package maskfill

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"testing"
)

var (
	white = color.NRGBA{255, 255, 255, 255}
	black = color.NRGBA{0, 0, 0, 255}
)

func makeSolidNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	return NewSolid(w, h, c)
}

func setPx(img *image.NRGBA, x, y int, c color.NRGBA) {
	i := img.PixOffset(x, y)
	img.Pix[i+0] = c.R
	img.Pix[i+1] = c.G
	img.Pix[i+2] = c.B
	img.Pix[i+3] = c.A
}

func px(img *image.NRGBA, x, y int) color.NRGBA {
	i := img.PixOffset(x, y)
	return color.NRGBA{img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
}

// makeRing draws a black ring centered in a white size x size image.
func makeRing(size int, outer, inner float64) *image.NRGBA {
	img := makeSolidNRGBA(size, size, white)
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c)
			if d >= inner && d < outer {
				setPx(img, x, y, black)
			}
		}
	}
	return img
}

// makeSquare draws a solid black side x side square at (x0,y0) on white.
func makeSquare(size, x0, y0, side int) *image.NRGBA {
	img := makeSolidNRGBA(size, size, white)
	for y := y0; y < y0+side; y++ {
		for x := x0; x < x0+side; x++ {
			setPx(img, x, y, black)
		}
	}
	return img
}

// bitmapFromRows builds a bitmap from strings where '#' is set.
func bitmapFromRows(rows ...string) *Bitmap {
	b := NewBitmap(len(rows[0]), len(rows))
	for y, r := range rows {
		for x, ch := range r {
			if ch == '#' {
				b.Set(x, y)
			}
		}
	}
	return b
}

func saveTestOutput(t *testing.T, name string, img image.Image) {
	t.Helper()
	if os.Getenv("PATTERNFILL_SAVE_TEST_OUTPUT") != "1" {
		return
	}
	f, err := os.Create(name)
	if err != nil {
		t.Logf("could not save %s: %v", name, err)
		return
	}
	defer f.Close()
	png.Encode(f, img)
}
