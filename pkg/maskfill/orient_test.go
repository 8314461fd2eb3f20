package maskfill

import (
	"image"
	"image/color"
	"testing"
)

// numbered returns a 3x2 image whose red channel encodes x+10*y.
func numbered() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			setPx(img, x, y, color.NRGBA{uint8(x + 10*y), 0, 0, 255})
		}
	}
	return img
}

func TestOrient(t *testing.T) {
	cases := []struct {
		orientation int
		w, h        int
		// red value expected at (0,0) and at (w-1,0)
		topLeft, topRight uint8
	}{
		{1, 3, 2, 0, 2},
		{2, 3, 2, 2, 0},
		{3, 3, 2, 12, 10},
		{4, 3, 2, 10, 12},
		{5, 2, 3, 0, 10},
		{6, 2, 3, 10, 0},
		{7, 2, 3, 12, 2},
		{8, 2, 3, 2, 12},
		{42, 3, 2, 0, 2},
	}
	for _, tc := range cases {
		out := Orient(numbered(), tc.orientation)
		if out.Rect.Dx() != tc.w || out.Rect.Dy() != tc.h {
			t.Fatalf("orientation %d: expected %dx%d, got %v", tc.orientation, tc.w, tc.h, out.Rect)
		}
		if got := px(out, 0, 0).R; got != tc.topLeft {
			t.Fatalf("orientation %d: top-left %d, want %d", tc.orientation, got, tc.topLeft)
		}
		if got := px(out, tc.w-1, 0).R; got != tc.topRight {
			t.Fatalf("orientation %d: top-right %d, want %d", tc.orientation, got, tc.topRight)
		}
	}
}
