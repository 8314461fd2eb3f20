package maskfill

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// ContentBounds returns the tight box around every pixel with non-zero alpha,
// relative to src.Bounds().Min, or nil if src is fully transparent.
func ContentBounds(src *image.NRGBA) *BoundingBox {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	minX, minY := b.Dx(), b.Dy()
	maxX, maxY := -1, -1
	for y := 0; y < b.Dy(); y++ {
		off := src.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < b.Dx(); x++ {
			if src.Pix[off+3] > 0 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				maxY = y
			}
			off += 4
		}
	}
	if maxX < 0 {
		return nil
	}
	return &BoundingBox{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}
}

// CropPattern trims transparent margins from a pattern tile so tiling is not
// padded by them. The crop is a new zero-origin image. A fully transparent
// tile cannot be cropped and is returned as is (the same pointer).
func CropPattern(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	bb := ContentBounds(src)
	if bb == nil {
		return src
	}
	r := bb.Rect().Add(src.Bounds().Min)
	out := image.NewNRGBA(image.Rect(0, 0, bb.Width, bb.Height))
	xdraw.Copy(out, image.Point{}, src, r, xdraw.Src, nil)
	return out
}
