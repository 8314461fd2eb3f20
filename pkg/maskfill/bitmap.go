package maskfill

import (
	"fmt"
	"image"
	"math/bits"
)

// Bitmap is a width x height grid of single-bit flags packed row by row.
// Each row starts on a byte boundary so that bands of rows can be written
// concurrently without sharing bytes.
type Bitmap struct {
	width  int
	height int
	stride int
	bits   []byte
}

// NewBitmap creates a cleared bitmap. Negative dimensions are treated as zero.
func NewBitmap(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	stride := (width + 7) / 8
	return &Bitmap{
		width:  width,
		height: height,
		stride: stride,
		bits:   make([]byte, stride*height),
	}
}

// Width returns the bitmap width.
func (b *Bitmap) Width() int { return b.width }

// Height returns the bitmap height.
func (b *Bitmap) Height() int { return b.height }

// Rect returns the bitmap dimensions as a zero-origin rectangle.
func (b *Bitmap) Rect() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

// Get reports whether (x,y) is set. Out-of-range coordinates read as unset.
func (b *Bitmap) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return false
	}
	return b.bits[y*b.stride+x>>3]&(1<<(uint(x)&7)) != 0
}

// Set sets (x,y). Out-of-range coordinates are ignored.
func (b *Bitmap) Set(x, y int) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.bits[y*b.stride+x>>3] |= 1 << (uint(x) & 7)
}

// Unset clears (x,y). Out-of-range coordinates are ignored.
func (b *Bitmap) Unset(x, y int) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.bits[y*b.stride+x>>3] &^= 1 << (uint(x) & 7)
}

// getIndex and setIndex address pixels by row-major index (y*width + x).
func (b *Bitmap) getIndex(i int) bool {
	y := i / b.width
	x := i - y*b.width
	return b.bits[y*b.stride+x>>3]&(1<<(uint(x)&7)) != 0
}

func (b *Bitmap) setIndex(i int) {
	y := i / b.width
	x := i - y*b.width
	b.bits[y*b.stride+x>>3] |= 1 << (uint(x) & 7)
}

func (b *Bitmap) row(y int) []byte { return b.bits[y*b.stride : (y+1)*b.stride] }

// Count returns the number of set pixels.
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.bits {
		n += bits.OnesCount8(v)
	}
	return n
}

// Clone duplicates the bitmap.
func (b *Bitmap) Clone() *Bitmap {
	out := NewBitmap(b.width, b.height)
	copy(out.bits, b.bits)
	return out
}

// Equal reports whether both bitmaps have the same dimensions and set pixels.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for i := range b.bits {
		if b.bits[i] != o.bits[i] {
			return false
		}
	}
	return true
}

// Contains reports whether every pixel set in o is also set in b.
func (b *Bitmap) Contains(o *Bitmap) bool {
	mustMatch(b, o.width, o.height)
	for i := range b.bits {
		if o.bits[i]&^b.bits[i] != 0 {
			return false
		}
	}
	return true
}

// Bounds returns the tight bounding box of all set pixels, or nil when none are set.
func (b *Bitmap) Bounds() *BoundingBox {
	minX, minY := b.width, b.height
	maxX, maxY := -1, -1
	for y := 0; y < b.height; y++ {
		r := b.row(y)
		for bi, v := range r {
			if v == 0 {
				continue
			}
			lo := bi*8 + bits.TrailingZeros8(v)
			hi := bi*8 + 7 - bits.LeadingZeros8(v)
			if lo < minX {
				minX = lo
			}
			if hi > maxX {
				maxX = hi
			}
			if y < minY {
				minY = y
			}
			maxY = y
		}
	}
	if maxX < 0 {
		return nil
	}
	return &BoundingBox{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}
}

// mustMatch panics when b does not have the given dimensions. A mismatch is a
// caller bug, never bad user data.
func mustMatch(b *Bitmap, width, height int) {
	if b == nil {
		panic("maskfill: nil bitmap")
	}
	if b.width != width || b.height != height {
		panic(fmt.Sprintf("maskfill: bitmap is %dx%d, want %dx%d", b.width, b.height, width, height))
	}
}

// BoundingBox is a pixel rectangle in image-local coordinates.
// A present box always has Width, Height >= 1 and lies inside its image.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect converts the box to an image.Rectangle.
func (bb BoundingBox) Rect() image.Rectangle {
	return image.Rect(bb.X, bb.Y, bb.X+bb.Width, bb.Y+bb.Height)
}

// Center returns the box center in pixel units.
func (bb BoundingBox) Center() Point {
	return Point{X: float64(bb.X) + float64(bb.Width)/2, Y: float64(bb.Y) + float64(bb.Height)/2}
}

func (bb BoundingBox) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", bb.Width, bb.Height, bb.X, bb.Y)
}

// Point is a position in canvas pixel units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
