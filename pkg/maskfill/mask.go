package maskfill

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// MaskOptions overrides the empirically chosen mask constants.
type MaskOptions struct {
	GapCloseRadius int
	MinRegionSize  int
}

// DefaultMaskOptions returns GapCloseRadius and MinRegionSize.
func DefaultMaskOptions() MaskOptions {
	return MaskOptions{GapCloseRadius: GapCloseRadius, MinRegionSize: MinRegionSize}
}

// MaskResult is the fillable region of an outline image.
type MaskResult struct {
	// Mask is opaque white (255,255,255,255) where pattern content belongs and
	// transparent black (0,0,0,0) elsewhere. It has the source dimensions and a zero origin.
	Mask *image.NRGBA
	// Bounds is the tight box around the fill, nil when there is nothing to composite.
	Bounds *BoundingBox
	// Fallback is true when the silhouette footprint was used because no enclosed region exists.
	Fallback bool
}

// Empty reports whether there is nothing to composite.
func (m MaskResult) Empty() bool { return m.Bounds == nil }

// BuildMask runs boundary detection, the fixed 5x5 gap-closing dilation and
// region classification with the default constants.
func BuildMask(src image.Image) MaskResult {
	return BuildMaskWithOptions(src, DefaultMaskOptions())
}

// BuildMaskWithOptions is BuildMask with caller-chosen constants.
func BuildMaskWithOptions(src image.Image, opts MaskOptions) MaskResult {
	if src == nil {
		return MaskResult{}
	}
	img := ToNRGBA(src)
	w, h := img.Rect.Dx(), img.Rect.Dy()
	boundary := DetectBoundary(img)
	closed := Dilate(boundary, opts.GapCloseRadius)
	cls := ClassifyRegions(closed, w, h, ClassifyOptions{MinRegionSize: opts.MinRegionSize})
	return MaskResult{
		Mask:     RenderMask(cls.FillMask),
		Bounds:   cls.Bounds,
		Fallback: cls.Fallback,
	}
}

// RenderMask converts a fill bitmap into the white-on-transparent mask image.
func RenderMask(fill *Bitmap) *image.NRGBA {
	if fill == nil {
		return nil
	}
	out := image.NewNRGBA(fill.Rect())
	forRows(fill.height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			off := y * out.Stride
			for x := 0; x < fill.width; x++ {
				if fill.Get(x, y) {
					out.Pix[off+0] = 255
					out.Pix[off+1] = 255
					out.Pix[off+2] = 255
					out.Pix[off+3] = 255
				}
				off += 4
			}
		}
	})
	return out
}

// FitWithin downscales src so that neither side exceeds maxDim, preserving the
// aspect ratio. Images that already fit (or maxDim <= 0) are returned as a
// zero-origin copy. Apply it before BuildMask to bound the cost of very large uploads.
func FitWithin(src image.Image, maxDim int) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return ToNRGBA(src)
	}
	nw, nh := maxDim, maxDim
	if w >= h {
		nh = int(float64(h)*float64(maxDim)/float64(w) + 0.5)
	} else {
		nw = int(float64(w)*float64(maxDim)/float64(h) + 0.5)
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	Logger().Debug("maskfill: downscaled input", "from", b.Size().String(), "to", dst.Rect.Size().String())
	return dst
}
