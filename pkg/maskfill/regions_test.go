package maskfill

import "testing"

func TestLabelRegionsFourConnected(t *testing.T) {
	// the two empty cells only touch diagonally, so they are separate regions
	b := bitmapFromRows(
		"#####",
		"#.###",
		"##.##",
		"#####",
	)
	regions := LabelRegions(b)
	if len(regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(regions))
	}
	for _, r := range regions {
		if r.Size != 1 || len(r.Pixels) != 1 || r.TouchesBorder {
			t.Fatalf("unexpected region %+v", r)
		}
	}
}

func TestLabelRegionsVisitsEveryPixelOnce(t *testing.T) {
	b := bitmapFromRows(
		"..#.....",
		"..#.###.",
		"###.#.#.",
		"....###.",
	)
	seen := make(map[int]bool)
	total := 0
	for _, r := range LabelRegions(b) {
		for _, i := range r.Pixels {
			if seen[i] {
				t.Fatalf("pixel %d visited twice", i)
			}
			if b.getIndex(i) {
				t.Fatalf("boundary pixel %d labelled", i)
			}
			seen[i] = true
		}
		total += r.Size
	}
	if want := 32 - b.Count(); total != want {
		t.Fatalf("expected %d labelled pixels, got %d", want, total)
	}
}

func TestLabelRegionsLargeComponent(t *testing.T) {
	// a single 1000x1000 component must not need recursion
	b := NewBitmap(1000, 1000)
	regions := LabelRegions(b)
	if len(regions) != 1 || regions[0].Size != 1000*1000 || !regions[0].TouchesBorder {
		t.Fatalf("unexpected labelling of an empty bitmap")
	}
}

// holeBitmap returns a 20x20 bitmap set everywhere except a 10x10 hole at (5,5)
// plus extra empty pixels appended to the hole's right edge.
func holeBitmap(extra int) *Bitmap {
	b := NewBitmap(20, 20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			b.Set(x, y)
		}
	}
	for y := 5; y < 15; y++ {
		for x := 5; x < 15; x++ {
			b.Unset(x, y)
		}
	}
	for i := 0; i < extra; i++ {
		b.Unset(15+i, 5)
	}
	return b
}

func TestClassifyRegionsThresholdIsStrict(t *testing.T) {
	at := ClassifyRegions(holeBitmap(0), 20, 20, ClassifyOptions{MinRegionSize: MinRegionSize})
	if at.Enclosed != 0 || !at.Fallback {
		t.Fatalf("a 100 pixel hole must be treated as noise, got %+v", at)
	}
	if want := (BoundingBox{X: 0, Y: 0, Width: 20, Height: 20}); at.Bounds == nil || *at.Bounds != want {
		t.Fatalf("expected silhouette bounds %v, got %v", want, at.Bounds)
	}

	above := ClassifyRegions(holeBitmap(1), 20, 20, ClassifyOptions{MinRegionSize: MinRegionSize})
	if above.Enclosed != 1 || above.Fallback {
		t.Fatalf("a 101 pixel hole must be filled, got %+v", above)
	}
	if want := (BoundingBox{X: 5, Y: 5, Width: 11, Height: 10}); above.Bounds == nil || *above.Bounds != want {
		t.Fatalf("expected hole bounds %v, got %v", want, above.Bounds)
	}
	if above.FillMask.Count() != 101 {
		t.Fatalf("expected 101 fill pixels, got %d", above.FillMask.Count())
	}
}

func TestClassifyRegionsBorderExclusion(t *testing.T) {
	fixtures := []*Bitmap{
		// box open to the top edge
		bitmapFromRows(
			"....#..#....",
			"....#..#....",
			"..###..###..",
			"..#......#..",
			"..#......#..",
			"..########..",
			"............",
		),
		// closed box with a small hole and an outside area
		bitmapFromRows(
			"............",
			".##########.",
			".#........#.",
			".#........#.",
			".##########.",
			"............",
		),
		holeBitmap(1),
	}
	for fi, b := range fixtures {
		w, h := b.Width(), b.Height()
		cls := ClassifyRegions(b, w, h, ClassifyOptions{MinRegionSize: 0})
		for _, r := range LabelRegions(b) {
			if !r.TouchesBorder {
				continue
			}
			for _, i := range r.Pixels {
				if cls.FillMask.getIndex(i) {
					t.Fatalf("fixture %d: border region pixel %d is in the fill", fi, i)
				}
			}
		}
	}
}

func TestClassifyRegionsFallbackMatchesBoundaryBounds(t *testing.T) {
	b := bitmapFromRows(
		"..........",
		"...####...",
		"...####...",
		"..........",
	)
	cls := ClassifyRegions(b, 10, 4, ClassifyOptions{MinRegionSize: MinRegionSize})
	if !cls.Fallback {
		t.Fatalf("expected fallback")
	}
	if want := *b.Bounds(); cls.Bounds == nil || *cls.Bounds != want {
		t.Fatalf("expected bounds %v, got %v", want, cls.Bounds)
	}
	if !cls.FillMask.Equal(b) {
		t.Fatalf("fallback fill should be the silhouette footprint")
	}
}

func TestClassifyRegionsNoBoundary(t *testing.T) {
	cls := ClassifyRegions(NewBitmap(8, 8), 8, 8, ClassifyOptions{MinRegionSize: MinRegionSize})
	if cls.Bounds != nil || cls.Fallback || cls.FillMask.Count() != 0 {
		t.Fatalf("expected empty classification, got %+v", cls)
	}
}

func TestClassifyRegionsDimensionMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	ClassifyRegions(NewBitmap(4, 4), 5, 4, ClassifyOptions{})
}

func TestClassifyRegionsFallbackFillsSmallHoles(t *testing.T) {
	// a 6 pixel radius hole is below the threshold but inside the silhouette
	src := makeRing(100, 12, 6)
	dilated := Dilate(DetectBoundary(src), GapCloseRadius)
	cls := ClassifyRegions(dilated, 100, 100, ClassifyOptions{MinRegionSize: MinRegionSize})
	if !cls.Fallback {
		t.Fatalf("expected fallback, got %+v", cls)
	}
	if want := *dilated.Bounds(); cls.Bounds == nil || *cls.Bounds != want {
		t.Fatalf("expected bounds %v, got %v", want, cls.Bounds)
	}
	if !cls.FillMask.Get(50, 50) {
		t.Fatalf("hole center must be filled")
	}
	if cls.FillMask.Get(1, 1) {
		t.Fatalf("background must not be filled")
	}
	if !cls.FillMask.Contains(dilated) {
		t.Fatalf("fill must cover the boundary pixels")
	}
}

func TestClassifyRegionsFallbackFillsSpecks(t *testing.T) {
	b := bitmapFromRows(
		"..........",
		"..######..",
		"..#.####..",
		"..####.#..",
		"..######..",
		"..........",
	)
	cls := ClassifyRegions(b, 10, 6, ClassifyOptions{MinRegionSize: MinRegionSize})
	if !cls.Fallback || !cls.FillMask.Get(3, 2) || !cls.FillMask.Get(6, 3) {
		t.Fatalf("specks inside the silhouette must be filled")
	}
	if cls.FillMask.Count() != 24 {
		t.Fatalf("expected 24 fill pixels, got %d", cls.FillMask.Count())
	}
}
