package maskfill

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Affine is a 2D affine transform in row-major order:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Affine struct {
	A, B, C float64
	D, E, F float64
}

func identityAffine() Affine { return Affine{A: 1, E: 1} }

func translateAffine(x, y float64) Affine { return Affine{A: 1, C: x, E: 1, F: y} }

func scaleAffine(x, y float64) Affine { return Affine{A: x, E: y} }

// rotateAffine rotates by deg degrees, clockwise on a y-down canvas like SVG rotate().
func rotateAffine(deg float64) Affine {
	rad := deg * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return Affine{A: c, B: -s, D: s, E: c}
}

// skewXAffine matches SVG skewX(deg).
func skewXAffine(deg float64) Affine {
	return Affine{A: 1, B: math.Tan(deg * math.Pi / 180), E: 1}
}

// Mul returns m * o: o is applied first.
func (m Affine) Mul(o Affine) Affine {
	return Affine{
		A: m.A*o.A + m.B*o.D,
		B: m.A*o.B + m.B*o.E,
		C: m.A*o.C + m.B*o.F + m.C,
		D: m.D*o.A + m.E*o.D,
		E: m.D*o.B + m.E*o.E,
		F: m.D*o.C + m.E*o.F + m.F,
	}
}

// Invert returns the inverse, or the identity when m is singular.
func (m Affine) Invert() Affine {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-10 {
		return identityAffine()
	}
	inv := 1 / det
	return Affine{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}
}

// Apply transforms a point.
func (m Affine) Apply(p Point) Point {
	return Point{X: m.A*p.X + m.B*p.Y + m.C, Y: m.D*p.X + m.E*p.Y + m.F}
}

// Aff3 converts to the x/image/draw transform representation.
func (m Affine) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}

// Affine maps tile pixel coordinates onto the canvas: the tile is stretched to
// the placement rectangle, then rotated about RotationCenter.
func (s SinglePlacement) Affine(tileW, tileH int) Affine {
	if tileW <= 0 || tileH <= 0 {
		return identityAffine()
	}
	c := s.RotationCenter
	stretch := translateAffine(float64(s.X), float64(s.Y)).
		Mul(scaleAffine(float64(s.Width)/float64(tileW), float64(s.Height)/float64(tileH)))
	return translateAffine(c.X, c.Y).Mul(rotateAffine(s.Rotation)).Mul(translateAffine(-c.X, -c.Y)).Mul(stretch)
}

// Affine returns the pattern-space to canvas mapping described by PatternTransform.
func (t TiledFill) Affine() Affine {
	return rotateAffine(t.Rotation).Mul(translateAffine(t.TranslateX, t.TranslateY)).Mul(skewXAffine(t.SkewX))
}
