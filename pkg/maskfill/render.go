package maskfill

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Render rasterises a composition onto a transparent canvas: the pattern is
// drawn per the instruction and clipped by the composition's mask. It is the
// reference for what a vector renderer should produce from the same instruction.
func Render(c Composition, canvas Size) *image.NRGBA {
	if canvas.Width <= 0 || canvas.Height <= 0 {
		if c.Clip == nil {
			return image.NewNRGBA(image.Rect(0, 0, 0, 0))
		}
		canvas = Size{Width: c.Clip.Rect.Dx(), Height: c.Clip.Rect.Dy()}
	}
	out := image.NewNRGBA(image.Rect(0, 0, canvas.Width, canvas.Height))
	if c.Empty() || c.Tile == nil || c.Tile.Rect.Empty() {
		return out
	}
	tile := c.Tile
	if c.Invert {
		tile = c.InvertColorMatrix.Apply(tile)
	}

	layer := image.NewNRGBA(out.Rect)
	switch in := c.Instruction.(type) {
	case SinglePlacement:
		s2d := in.Affine(tile.Rect.Dx(), tile.Rect.Dy())
		xdraw.BiLinear.Transform(layer, s2d.Aff3(), tile, tile.Bounds(), xdraw.Src, nil)
	case TiledFill:
		renderTiles(layer, tile, in, c.Clip)
	}

	if c.Clip == nil {
		return layer
	}
	draw.DrawMask(out, out.Rect, layer, image.Point{}, c.Clip, c.Clip.Rect.Min, draw.Over)
	return out
}

// renderTiles samples the repeating pattern for every canvas pixel the clip
// leaves visible. Each canvas pixel center is mapped back into pattern space
// and wrapped into the cell anchored at the instruction origin.
func renderTiles(dst, tile *image.NRGBA, in TiledFill, clip *image.NRGBA) {
	if in.TileWidth <= 0 || in.TileHeight <= 0 {
		return
	}
	inv := in.Affine().Invert()
	tw, th := float64(tile.Rect.Dx()), float64(tile.Rect.Dy())
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	forRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			off := y * dst.Stride
			for x := 0; x < w; x++ {
				if clip != nil && !clipVisible(clip, x, y) {
					off += 4
					continue
				}
				p := inv.Apply(Point{X: float64(x) + 0.5, Y: float64(y) + 0.5})
				u := wrap(p.X-in.Origin.X, in.TileWidth) / in.TileWidth * tw
				v := wrap(p.Y-in.Origin.Y, in.TileHeight) / in.TileHeight * th
				px := samplePixelClamped(tile, tile.Rect.Min.X+int(u), tile.Rect.Min.Y+int(v))
				dst.Pix[off+0] = px.R
				dst.Pix[off+1] = px.G
				dst.Pix[off+2] = px.B
				dst.Pix[off+3] = px.A
				off += 4
			}
		}
	})
}

func clipVisible(clip *image.NRGBA, x, y int) bool {
	p := image.Pt(x, y).Add(clip.Rect.Min)
	if !p.In(clip.Rect) {
		return false
	}
	return clip.Pix[clip.PixOffset(p.X, p.Y)+3] > 0
}

// wrap returns v modulo period in [0,period).
func wrap(v, period float64) float64 {
	r := math.Mod(v, period)
	if r < 0 {
		r += period
	}
	return r
}
