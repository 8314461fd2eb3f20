package maskfill

import (
	"encoding/json"
	"fmt"
	"image"
	"strconv"
)

// BaseTileSize is the pattern cell edge, in pixels, at scale 1.
const BaseTileSize = 160

// Size is a canvas size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Instruction is what the rendering layer has to draw. It is exactly one of
// SinglePlacement, TiledFill or NoOp; callers switch on the concrete type.
type Instruction interface {
	// Kind names the variant: "single", "tiled" or "none".
	Kind() string
	instruction()
}

// SinglePlacement stretches the pattern once over the whole canvas and rotates
// it about the canvas center. The clip mask limits what is visible.
type SinglePlacement struct {
	X              int     `json:"x"`
	Y              int     `json:"y"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	RotationCenter Point   `json:"rotationCenter"`
	Rotation       float64 `json:"rotation"`
	// Transform is the SVG form of the rotation: "rotate(deg cx cy)".
	Transform string `json:"transform"`
}

// TiledFill repeats the pattern in cells of TileWidth x TileHeight anchored at
// Origin, with PatternTransform applied to the pattern space.
type TiledFill struct {
	TileWidth  float64 `json:"tileWidth"`
	TileHeight float64 `json:"tileHeight"`
	Origin     Point   `json:"origin"`
	Rotation   float64 `json:"rotation"`
	TranslateX float64 `json:"translateX"`
	TranslateY float64 `json:"translateY"`
	SkewX      float64 `json:"skewX"`
	// PatternTransform is "rotate(r) translate(x,y) skewX(s)" in that order.
	PatternTransform string `json:"patternTransform"`
}

// NoOp means there is nothing to draw.
type NoOp struct{}

func (SinglePlacement) Kind() string { return "single" }
func (TiledFill) Kind() string       { return "tiled" }
func (NoOp) Kind() string            { return "none" }

func (SinglePlacement) instruction() {}
func (TiledFill) instruction()       {}
func (NoOp) instruction()            {}

// Composition bundles the instruction with everything needed to draw it.
type Composition struct {
	Instruction Instruction
	// Clip is the fill mask grown by the outline offset. Nil for NoOp.
	Clip *image.NRGBA
	// ClipRadius is the integer dilation applied to Clip; OffsetRadius is the
	// exact value (outlineOffset/2) for renderers that dilate vector masks.
	ClipRadius   int
	OffsetRadius float64
	// Invert requests InvertColorMatrix on the pattern samples, never on the mask.
	Invert            bool
	InvertColorMatrix ColorMatrix
	// Tile is the pattern tile the instruction refers to.
	Tile *image.NRGBA
	// Settings are the normalized settings the instruction was derived from.
	Settings PatternSettings
}

// Empty reports whether the composition draws nothing.
func (c Composition) Empty() bool {
	_, none := c.Instruction.(NoOp)
	return c.Instruction == nil || none
}

// MarshalInstruction encodes an instruction as {"kind": ..., "instruction": {...}}
// for renderers outside the process.
func MarshalInstruction(in Instruction) ([]byte, error) {
	if in == nil {
		in = NoOp{}
	}
	doc := struct {
		Kind        string      `json:"kind"`
		Instruction Instruction `json:"instruction"`
	}{in.Kind(), in}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal instruction: %w", err)
	}
	return out, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PatternTransform renders the tiled pattern-space transform. The order
// rotate, translate, skewX is fixed: translation happens in the rotated frame
// and skew after translation.
func PatternTransform(rotation, x, y, skew float64) string {
	return fmt.Sprintf("rotate(%s) translate(%s,%s) skewX(%s)",
		formatNumber(rotation), formatNumber(x), formatNumber(y), formatNumber(skew))
}

// Compose decides how tile fills mask under s on a canvas of the given size.
// Settings are normalized first. An empty mask or a nil tile yields NoOp.
// A zero canvas size falls back to the mask dimensions, or to the extent of
// the mask bounds when no mask image is given.
func Compose(mask MaskResult, tile *image.NRGBA, s PatternSettings, canvas Size) Composition {
	s = s.Normalized()
	comp := Composition{
		Instruction:       NoOp{},
		Invert:            s.Invert,
		InvertColorMatrix: InvertMatrix,
		Tile:              tile,
		Settings:          s,
	}
	if mask.Bounds == nil || tile == nil {
		Logger().Debug("maskfill: nothing to compose", "emptyMask", mask.Bounds == nil, "noTile", tile == nil)
		return comp
	}
	if canvas.Width <= 0 || canvas.Height <= 0 {
		if mask.Mask != nil {
			canvas = Size{Width: mask.Mask.Rect.Dx(), Height: mask.Mask.Rect.Dy()}
		} else {
			canvas = Size{Width: mask.Bounds.X + mask.Bounds.Width, Height: mask.Bounds.Y + mask.Bounds.Height}
		}
	}

	comp.ClipRadius = OffsetRadius(s.OutlineOffset)
	comp.OffsetRadius = s.OutlineOffset / 2
	comp.Clip = DilateMask(mask.Mask, comp.ClipRadius)

	bb := *mask.Bounds
	if !s.Tiled() {
		cx, cy := float64(canvas.Width)/2, float64(canvas.Height)/2
		comp.Instruction = SinglePlacement{
			X:              0,
			Y:              0,
			Width:          canvas.Width,
			Height:         canvas.Height,
			RotationCenter: Point{X: cx, Y: cy},
			Rotation:       s.Rotation,
			Transform:      fmt.Sprintf("rotate(%s %s %s)", formatNumber(s.Rotation), formatNumber(cx), formatNumber(cy)),
		}
		Logger().Debug("maskfill: single placement", "canvas", fmt.Sprintf("%dx%d", canvas.Width, canvas.Height), "rotation", s.Rotation)
		return comp
	}

	tw, th := float64(bb.Width), float64(bb.Height)
	if s.TileH {
		tw = BaseTileSize * s.Scale
	}
	if s.TileV {
		th = BaseTileSize * s.Scale
	}
	comp.Instruction = TiledFill{
		TileWidth:        tw,
		TileHeight:       th,
		Origin:           Point{X: float64(bb.X), Y: float64(bb.Y)},
		Rotation:         s.Rotation,
		TranslateX:       s.PosX,
		TranslateY:       s.PosY,
		SkewX:            s.Stagger,
		PatternTransform: PatternTransform(s.Rotation, s.PosX, s.PosY, s.Stagger),
	}
	Logger().Debug("maskfill: tiled fill", "tileWidth", tw, "tileHeight", th, "bounds", bb.String())
	return comp
}
