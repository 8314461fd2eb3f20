package maskfill

import (
	"image"
	"math"
)

// GapCloseRadius is the half-width of the square used to close sub-pixel gaps in
// traced outlines before region classification (a 5x5 neighbourhood).
const GapCloseRadius = 2

// Dilate grows every set pixel of b into a (2*radius+1) square, clipped to the
// bitmap. It never writes to b. radius <= 0 returns an identical copy.
//
// The square max filter is separable: a horizontal pass reads b and writes a
// scratch bitmap, then a vertical pass reads the scratch and writes the result.
func Dilate(b *Bitmap, radius int) *Bitmap {
	if b == nil {
		return nil
	}
	if radius <= 0 || b.width == 0 || b.height == 0 {
		return b.Clone()
	}
	w, h := b.width, b.height
	horiz := NewBitmap(w, h)
	forRows(h, func(y0, y1 int) {
		// prefix[i] holds the number of set pixels in [0,i) of the current row
		prefix := make([]int, w+1)
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				prefix[x+1] = prefix[x]
				if b.Get(x, y) {
					prefix[x+1]++
				}
			}
			if prefix[w] == 0 {
				continue
			}
			for x := 0; x < w; x++ {
				lo := clampInt(x-radius, 0, w)
				hi := clampInt(x+radius+1, 0, w)
				if prefix[hi]-prefix[lo] > 0 {
					horiz.Set(x, y)
				}
			}
		}
	})

	out := NewBitmap(w, h)
	forRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			dst := out.row(y)
			lo := clampInt(y-radius, 0, h-1)
			hi := clampInt(y+radius, 0, h-1)
			for sy := lo; sy <= hi; sy++ {
				src := horiz.row(sy)
				for i := range dst {
					dst[i] |= src[i]
				}
			}
		}
	})
	return out
}

// OffsetRadius converts a user outline offset into the integer dilation radius
// applied to the rendered mask. The offset is halved and rounded to the nearest
// pixel; negative or non-finite offsets disable the pass.
func OffsetRadius(offset float64) int {
	if math.IsNaN(offset) || math.IsInf(offset, 0) || offset <= 0 {
		return 0
	}
	return int(math.Round(offset / 2))
}

// MaskBitmap reads a rendered mask image back into a bitmap: any pixel with
// non-zero alpha is part of the fill.
func MaskBitmap(mask *image.NRGBA) *Bitmap {
	if mask == nil {
		return NewBitmap(0, 0)
	}
	bnd := mask.Bounds()
	w, h := bnd.Dx(), bnd.Dy()
	out := NewBitmap(w, h)
	forRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			off := mask.PixOffset(bnd.Min.X, bnd.Min.Y+y)
			for x := 0; x < w; x++ {
				if mask.Pix[off+3] > 0 {
					out.Set(x, y)
				}
				off += 4
			}
		}
	})
	return out
}

// DilateMask grows the opaque region of a rendered mask image outward by radius
// pixels. The result is a new white-on-transparent mask; mask itself is untouched.
func DilateMask(mask *image.NRGBA, radius int) *image.NRGBA {
	if mask == nil {
		return nil
	}
	if radius <= 0 {
		return CloneNRGBA(mask)
	}
	return RenderMask(Dilate(MaskBitmap(mask), radius))
}
