package maskfill

// MinRegionSize is the pixel count an enclosed region must exceed to be filled.
// Smaller enclosed regions are treated as specks of noise.
const MinRegionSize = 100

// Region is one 4-connected component of non-boundary pixels.
// Pixels holds row-major indices (y*width + x) in breadth-first visit order.
type Region struct {
	Pixels        []int
	TouchesBorder bool
	Size          int
}

// Enclosed reports whether the region qualifies as a fill target under minSize.
func (r Region) Enclosed(minSize int) bool {
	return !r.TouchesBorder && r.Size > minSize
}

// LabelRegions flood-fills every maximal 4-connected component of pixels that
// are not set in boundary. Each pixel is visited exactly once; the traversal
// uses an explicit FIFO queue so large components cannot exhaust the stack.
func LabelRegions(boundary *Bitmap) []Region {
	if boundary == nil {
		return nil
	}
	w, h := boundary.width, boundary.height
	if w == 0 || h == 0 {
		return nil
	}
	// boundary pixels start out visited so the fill never enters them
	visited := boundary.Clone()
	var regions []Region
	for seed := 0; seed < w*h; seed++ {
		if visited.getIndex(seed) {
			continue
		}
		visited.setIndex(seed)
		// the queue doubles as the region's pixel list: head walks it while tail grows
		queue := []int{seed}
		touches := false
		for head := 0; head < len(queue); head++ {
			i := queue[head]
			y := i / w
			x := i - y*w
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				touches = true
			}
			if x > 0 && !visited.getIndex(i-1) {
				visited.setIndex(i - 1)
				queue = append(queue, i-1)
			}
			if x < w-1 && !visited.getIndex(i+1) {
				visited.setIndex(i + 1)
				queue = append(queue, i+1)
			}
			if y > 0 && !visited.getIndex(i-w) {
				visited.setIndex(i - w)
				queue = append(queue, i-w)
			}
			if y < h-1 && !visited.getIndex(i+w) {
				visited.setIndex(i + w)
				queue = append(queue, i+w)
			}
		}
		regions = append(regions, Region{Pixels: queue, TouchesBorder: touches, Size: len(queue)})
	}
	return regions
}

// ClassifyOptions tunes region selection.
type ClassifyOptions struct {
	// MinRegionSize is the strict lower bound on enclosed region size.
	// Negative values are treated as zero.
	MinRegionSize int
}

// Classification is the outcome of ClassifyRegions.
type Classification struct {
	// FillMask marks the pixels that receive pattern content.
	FillMask *Bitmap
	// Bounds is the tight box around FillMask, nil when nothing is fillable.
	Bounds *BoundingBox
	// Regions is the number of components found, Enclosed the number selected.
	Regions  int
	Enclosed int
	// Fallback is set when no enclosed region qualified and the silhouette
	// footprint itself became the fill.
	Fallback bool
}

// ClassifyRegions selects the enclosed components of a dilated boundary bitmap
// as the fill. Components touching the image border are never filled, and
// enclosed components of MinRegionSize pixels or fewer are dropped as noise.
//
// When nothing qualifies but boundary pixels exist, the silhouette footprint
// becomes the fill: the boundary pixels plus every component that does not
// touch the border, whatever its size. Bounds equals the bounding box of the
// dilated boundary. With no boundary pixels at all Bounds is nil.
//
// ClassifyRegions panics if dilated is not width x height.
func ClassifyRegions(dilated *Bitmap, width, height int, opts ClassifyOptions) Classification {
	mustMatch(dilated, width, height)
	minSize := opts.MinRegionSize
	if minSize < 0 {
		minSize = 0
	}

	regions := LabelRegions(dilated)
	fill := NewBitmap(width, height)
	enclosed := 0
	for _, r := range regions {
		if !r.Enclosed(minSize) {
			continue
		}
		enclosed++
		for _, i := range r.Pixels {
			fill.setIndex(i)
		}
	}

	res := Classification{FillMask: fill, Regions: len(regions), Enclosed: enclosed}
	if enclosed > 0 {
		res.Bounds = fill.Bounds()
		Logger().Debug("maskfill: enclosed regions selected",
			"regions", len(regions), "enclosed", enclosed, "bounds", res.Bounds.String())
		return res
	}

	silhouette := dilated.Bounds()
	if silhouette == nil {
		Logger().Debug("maskfill: no boundary pixels", "width", width, "height", height)
		return res
	}
	footprint := dilated.Clone()
	for _, r := range regions {
		if r.TouchesBorder {
			continue
		}
		for _, i := range r.Pixels {
			footprint.setIndex(i)
		}
	}
	res.FillMask = footprint
	res.Bounds = silhouette
	res.Fallback = true
	Logger().Debug("maskfill: no enclosed region, filling silhouette",
		"regions", len(regions), "bounds", silhouette.String())
	return res
}
