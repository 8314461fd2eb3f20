package maskfill

import (
	"image"
	"strconv"
	"strings"
)

// ColorMatrix is a 4x5 row-major color transform applied to non-premultiplied
// samples in [0,255]:
//
//	[R']   [m0  m1  m2  m3  m4 ]   [R]
//	[G'] = [m5  m6  m7  m8  m9 ] * [G]
//	[B']   [m10 m11 m12 m13 m14]   [B]
//	[A']   [m15 m16 m17 m18 m19]   [A]
//	                               [1]
//
// The fifth column is a bias in the same [0,255] units.
type ColorMatrix [20]float64

// InvertMatrix negates the color channels and keeps alpha.
var InvertMatrix = ColorMatrix{
	-1, 0, 0, 0, 255,
	0, -1, 0, 0, 255,
	0, 0, -1, 0, 255,
	0, 0, 0, 1, 0,
}

// SVGValues formats the matrix for an feColorMatrix values attribute, which
// expects the bias column scaled to [0,1].
func (m ColorMatrix) SVGValues() string {
	parts := make([]string, len(m))
	for i, v := range m {
		if i%5 == 4 {
			v /= 255
		}
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, " ")
}

// Apply returns a transformed copy of src.
func (m ColorMatrix) Apply(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	out := CloneNRGBA(src)
	forRows(out.Rect.Dy(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			off := y * out.Stride
			for x := 0; x < out.Rect.Dx(); x++ {
				p := out.Pix[off : off+4 : off+4]
				r, g, b, a := float64(p[0]), float64(p[1]), float64(p[2]), float64(p[3])
				p[0] = clampFloatToUint8(m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4])
				p[1] = clampFloatToUint8(m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9])
				p[2] = clampFloatToUint8(m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14])
				p[3] = clampFloatToUint8(m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19])
				off += 4
			}
		}
	})
	return out
}
