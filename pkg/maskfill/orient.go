package maskfill

import "image"

// Orient applies an EXIF orientation tag (1..8) so the outline is processed
// upright. Orientation 1 and unknown values return a plain zero-origin copy.
func Orient(img image.Image, orientation int) *image.NRGBA {
	if img == nil {
		return nil
	}
	src := ToNRGBA(img)
	if orientation <= 1 || orientation > 8 {
		return src
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	ow, oh := w, h
	if orientation >= 5 {
		// 5..8 swap axes
		ow, oh = h, w
	}
	out := image.NewNRGBA(image.Rect(0, 0, ow, oh))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var dx, dy int
			switch orientation {
			case 2: // mirror horizontal
				dx, dy = w-1-x, y
			case 3: // rotate 180
				dx, dy = w-1-x, h-1-y
			case 4: // mirror vertical
				dx, dy = x, h-1-y
			case 5: // transpose
				dx, dy = y, x
			case 6: // rotate 90 CW
				dx, dy = h-1-y, x
			case 7: // transverse
				dx, dy = h-1-y, w-1-x
			case 8: // rotate 90 CCW
				dx, dy = y, w-1-x
			}
			si := y*src.Stride + x*4
			di := dy*out.Stride + dx*4
			copy(out.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return out
}
