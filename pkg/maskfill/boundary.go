package maskfill

import "image"

const (
	// BoundaryAlphaMin is the alpha a pixel must exceed to count as ink.
	BoundaryAlphaMin = 10
	// BoundaryLuminanceMax is the mean-channel luminance a pixel must stay below to count as ink.
	BoundaryLuminanceMax = 248
)

// IsBoundaryPixel reports whether a non-premultiplied RGBA sample is outline ink:
// alpha > 10 and (r+g+b)/3 < 248. Only opaque near-white pixels and
// transparent pixels are background.
func IsBoundaryPixel(r, g, b, a uint8) bool {
	if int(a) <= BoundaryAlphaMin {
		return false
	}
	// compare the channel sum to avoid the division
	return int(r)+int(g)+int(b) < 3*BoundaryLuminanceMax
}

// DetectBoundary classifies every pixel of src as boundary or background.
// Rows are processed in parallel bands; each band writes only its own bitmap rows.
func DetectBoundary(src *image.NRGBA) *Bitmap {
	if src == nil {
		return NewBitmap(0, 0)
	}
	bnd := src.Bounds()
	w, h := bnd.Dx(), bnd.Dy()
	out := NewBitmap(w, h)
	forRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			off := src.PixOffset(bnd.Min.X, bnd.Min.Y+y)
			for x := 0; x < w; x++ {
				p := src.Pix[off : off+4 : off+4]
				if IsBoundaryPixel(p[0], p[1], p[2], p[3]) {
					out.Set(x, y)
				}
				off += 4
			}
		}
	})
	return out
}
