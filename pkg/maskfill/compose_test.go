package maskfill

import (
	"encoding/json"
	"image/color"
	"testing"
)

func boundsMask(bb BoundingBox) MaskResult {
	return MaskResult{Bounds: &bb}
}

func TestComposeBranchSelection(t *testing.T) {
	tile := makeSolidNRGBA(8, 8, black)
	mask := boundsMask(BoundingBox{X: 10, Y: 10, Width: 50, Height: 40})
	for _, tc := range []struct {
		h, v  bool
		tiled bool
	}{
		{false, false, false},
		{true, false, true},
		{false, true, true},
		{true, true, true},
	} {
		s := DefaultSettings().WithTiling(tc.h, tc.v)
		comp := Compose(mask, tile, s, Size{Width: 100, Height: 80})
		switch comp.Instruction.(type) {
		case SinglePlacement:
			if tc.tiled {
				t.Fatalf("tileH=%v tileV=%v: expected TiledFill", tc.h, tc.v)
			}
		case TiledFill:
			if !tc.tiled {
				t.Fatalf("tileH=%v tileV=%v: expected SinglePlacement", tc.h, tc.v)
			}
		default:
			t.Fatalf("unexpected instruction %T", comp.Instruction)
		}
	}
}

func TestComposeTiledHorizontalScale(t *testing.T) {
	tile := makeSolidNRGBA(16, 16, black)
	mask := boundsMask(BoundingBox{X: 0, Y: 0, Width: 200, Height: 100})
	s := DefaultSettings().WithTiling(true, false).WithScale(2)
	comp := Compose(mask, tile, s, Size{Width: 200, Height: 100})
	tf, ok := comp.Instruction.(TiledFill)
	if !ok {
		t.Fatalf("expected TiledFill, got %T", comp.Instruction)
	}
	if tf.TileWidth != 320 || tf.TileHeight != 100 {
		t.Fatalf("expected 320x100 tile, got %vx%v", tf.TileWidth, tf.TileHeight)
	}
}

func TestComposeTiledVertical(t *testing.T) {
	tile := makeSolidNRGBA(16, 16, black)
	mask := boundsMask(BoundingBox{X: 5, Y: 7, Width: 90, Height: 60})
	comp := Compose(mask, tile, DefaultSettings().WithTiling(false, true).WithScale(1.5), Size{Width: 100, Height: 100})
	tf := comp.Instruction.(TiledFill)
	if tf.TileWidth != 90 || tf.TileHeight != 240 {
		t.Fatalf("expected 90x240 tile, got %vx%v", tf.TileWidth, tf.TileHeight)
	}
	if tf.Origin != (Point{X: 5, Y: 7}) {
		t.Fatalf("expected origin at bounds corner, got %v", tf.Origin)
	}
}

func TestComposePatternTransformOrder(t *testing.T) {
	tile := makeSolidNRGBA(4, 4, black)
	mask := boundsMask(BoundingBox{Width: 10, Height: 10})
	s := DefaultSettings().WithTiling(true, true).WithRotation(30).WithPosition(10, -5).WithStagger(15)
	tf := Compose(mask, tile, s, Size{Width: 10, Height: 10}).Instruction.(TiledFill)
	if want := "rotate(30) translate(10,-5) skewX(15)"; tf.PatternTransform != want {
		t.Fatalf("expected %q, got %q", want, tf.PatternTransform)
	}
	// rotation is wrapped before it reaches the transform
	tf = Compose(mask, tile, s.WithRotation(-45), Size{Width: 10, Height: 10}).Instruction.(TiledFill)
	if want := "rotate(315) translate(10,-5) skewX(15)"; tf.PatternTransform != want {
		t.Fatalf("expected %q, got %q", want, tf.PatternTransform)
	}
}

func TestComposeSinglePlacementSpansCanvas(t *testing.T) {
	tile := makeSolidNRGBA(4, 4, black)
	mask := boundsMask(BoundingBox{X: 40, Y: 30, Width: 20, Height: 20})
	comp := Compose(mask, tile, DefaultSettings().WithRotation(45), Size{Width: 300, Height: 200})
	sp := comp.Instruction.(SinglePlacement)
	if sp.X != 0 || sp.Y != 0 || sp.Width != 300 || sp.Height != 200 {
		t.Fatalf("placement must cover the canvas, got %+v", sp)
	}
	if sp.RotationCenter != (Point{X: 150, Y: 100}) {
		t.Fatalf("unexpected rotation center %v", sp.RotationCenter)
	}
	if sp.Transform != "rotate(45 150 100)" {
		t.Fatalf("unexpected transform %q", sp.Transform)
	}
}

func TestComposeNoOp(t *testing.T) {
	tile := makeSolidNRGBA(4, 4, black)
	comp := Compose(MaskResult{}, tile, DefaultSettings(), Size{Width: 10, Height: 10})
	if _, ok := comp.Instruction.(NoOp); !ok || !comp.Empty() {
		t.Fatalf("empty mask must produce NoOp, got %T", comp.Instruction)
	}
	comp = Compose(boundsMask(BoundingBox{Width: 3, Height: 3}), nil, DefaultSettings(), Size{Width: 10, Height: 10})
	if !comp.Empty() {
		t.Fatalf("nil tile must produce NoOp")
	}
	if comp.Clip != nil {
		t.Fatalf("NoOp has no clip")
	}
}

func TestComposeZeroCanvasWithoutMaskImage(t *testing.T) {
	tile := makeSolidNRGBA(8, 8, black)
	comp := Compose(boundsMask(BoundingBox{X: 10, Y: 5, Width: 30, Height: 20}), tile, DefaultSettings(), Size{})
	sp, ok := comp.Instruction.(SinglePlacement)
	if !ok {
		t.Fatalf("expected SinglePlacement, got %T", comp.Instruction)
	}
	if sp.Width != 40 || sp.Height != 25 {
		t.Fatalf("expected a 40x25 placement from the bounds extent, got %dx%d", sp.Width, sp.Height)
	}
	if sp.RotationCenter != (Point{X: 20, Y: 12.5}) {
		t.Fatalf("unexpected rotation center %v", sp.RotationCenter)
	}
}

func TestComposeOutlineOffsetGrowsClip(t *testing.T) {
	res := BuildMask(makeRing(100, 40, 20))
	tile := makeSolidNRGBA(4, 4, black)
	base := Compose(res, tile, DefaultSettings(), Size{})
	grown := Compose(res, tile, DefaultSettings().WithOutlineOffset(6), Size{})
	if grown.ClipRadius != 3 || grown.OffsetRadius != 3 {
		t.Fatalf("expected radius 3, got %d / %v", grown.ClipRadius, grown.OffsetRadius)
	}
	b0, b1 := MaskBitmap(base.Clip), MaskBitmap(grown.Clip)
	if !b1.Contains(b0) || b1.Count() <= b0.Count() {
		t.Fatalf("outline offset must grow the clip")
	}
	if !MaskBitmap(res.Mask).Equal(b0) {
		t.Fatalf("compose must not modify the mask")
	}
	sp := base.Instruction.(SinglePlacement)
	if sp.Width != 100 || sp.Height != 100 {
		t.Fatalf("zero canvas should fall back to the mask size, got %+v", sp)
	}
}

func TestComposeInvert(t *testing.T) {
	tile := makeSolidNRGBA(4, 4, color.NRGBA{255, 0, 0, 255})
	comp := Compose(boundsMask(BoundingBox{Width: 4, Height: 4}), tile, DefaultSettings().WithInvert(true), Size{Width: 4, Height: 4})
	if !comp.Invert {
		t.Fatalf("invert flag lost")
	}
	if comp.InvertColorMatrix != InvertMatrix {
		t.Fatalf("expected the inversion matrix")
	}
	if got := InvertMatrix.SVGValues(); got != "-1 0 0 0 1 0 -1 0 0 1 0 0 -1 0 1 0 0 0 1 0" {
		t.Fatalf("unexpected feColorMatrix values %q", got)
	}
	if px(tile, 0, 0) != (color.NRGBA{255, 0, 0, 255}) {
		t.Fatalf("compose must not modify the tile")
	}
}

func TestMarshalInstruction(t *testing.T) {
	tile := makeSolidNRGBA(4, 4, black)
	comp := Compose(boundsMask(BoundingBox{Width: 200, Height: 100}), tile, DefaultSettings().WithTiling(true, false), Size{Width: 200, Height: 100})
	data, err := MarshalInstruction(comp.Instruction)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc struct {
		Kind        string    `json:"kind"`
		Instruction TiledFill `json:"instruction"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Kind != "tiled" || doc.Instruction.TileWidth != 160 {
		t.Fatalf("unexpected document %s", data)
	}
	none, _ := MarshalInstruction(nil)
	if !json.Valid(none) {
		t.Fatalf("invalid json for nil instruction")
	}
}
