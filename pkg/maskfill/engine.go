package maskfill

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Inputs are the images and settings a command works on.
type Inputs struct {
	Outline  image.Image
	Pattern  image.Image
	Settings PatternSettings
	// Options are used as given; nil selects DefaultMaskOptions.
	Options *MaskOptions
}

func (in Inputs) options() MaskOptions {
	if in.Options == nil {
		return DefaultMaskOptions()
	}
	return *in.Options
}

func (in Inputs) outline() (*image.NRGBA, error) {
	if in.Outline == nil {
		return nil, fmt.Errorf("outline image is nil")
	}
	return ToNRGBA(in.Outline), nil
}

func (in Inputs) pattern() (*image.NRGBA, error) {
	if in.Pattern == nil {
		return nil, fmt.Errorf("pattern image is nil")
	}
	return ToNRGBA(in.Pattern), nil
}

func optionalInt(args []string, i int, def int, name string) (int, error) {
	if len(args) <= i || args[i] == "" {
		return def, nil
	}
	v, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}

// ApplyCommand runs one pipeline command and returns the resulting image.
// See Commands for names and arguments.
func ApplyCommand(in Inputs, commandName string, args []string) (image.Image, error) {
	opts := in.options()
	switch commandName {
	case "boundary":
		if len(args) != 0 {
			return nil, fmt.Errorf("boundary takes no args")
		}
		src, err := in.outline()
		if err != nil {
			return nil, err
		}
		return RenderMask(DetectBoundary(src)), nil

	case "gapClose":
		src, err := in.outline()
		if err != nil {
			return nil, err
		}
		radius, err := optionalInt(args, 0, opts.GapCloseRadius, "radius")
		if err != nil {
			return nil, err
		}
		return RenderMask(Dilate(DetectBoundary(src), radius)), nil

	case "regions":
		src, err := in.outline()
		if err != nil {
			return nil, err
		}
		minSize, err := optionalInt(args, 0, opts.MinRegionSize, "minSize")
		if err != nil {
			return nil, err
		}
		return renderRegions(Dilate(DetectBoundary(src), opts.GapCloseRadius), minSize), nil

	case "mask":
		src, err := in.outline()
		if err != nil {
			return nil, err
		}
		gap, err := optionalInt(args, 0, opts.GapCloseRadius, "gapRadius")
		if err != nil {
			return nil, err
		}
		minSize, err := optionalInt(args, 1, opts.MinRegionSize, "minSize")
		if err != nil {
			return nil, err
		}
		return BuildMaskWithOptions(src, MaskOptions{GapCloseRadius: gap, MinRegionSize: minSize}).Mask, nil

	case "offset":
		if len(args) != 1 {
			return nil, fmt.Errorf("offset requires 1 arg: outlineOffset")
		}
		off, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid outlineOffset: %w", err)
		}
		src, err := in.outline()
		if err != nil {
			return nil, err
		}
		m := BuildMaskWithOptions(src, opts)
		return DilateMask(m.Mask, OffsetRadius(off)), nil

	case "crop":
		if len(args) != 0 {
			return nil, fmt.Errorf("crop takes no args")
		}
		p, err := in.pattern()
		if err != nil {
			return nil, err
		}
		return CropPattern(p), nil

	case "invert":
		if len(args) != 0 {
			return nil, fmt.Errorf("invert takes no args")
		}
		p, err := in.pattern()
		if err != nil {
			return nil, err
		}
		return InvertMatrix.Apply(p), nil

	case "fit":
		if len(args) != 1 {
			return nil, fmt.Errorf("fit requires 1 arg: maxDim")
		}
		maxDim, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid maxDim: %w", err)
		}
		src, err := in.outline()
		if err != nil {
			return nil, err
		}
		return FitWithin(src, maxDim), nil

	case "orient":
		if len(args) != 1 {
			return nil, fmt.Errorf("orient requires 1 arg: orientation")
		}
		o, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid orientation: %w", err)
		}
		if in.Outline == nil {
			return nil, fmt.Errorf("outline image is nil")
		}
		return Orient(in.Outline, o), nil

	case "compose":
		if len(args) != 0 {
			return nil, fmt.Errorf("compose takes no args")
		}
		src, err := in.outline()
		if err != nil {
			return nil, err
		}
		p, err := in.pattern()
		if err != nil {
			return nil, err
		}
		canvas := Size{Width: src.Rect.Dx(), Height: src.Rect.Dy()}
		comp := Compose(BuildMaskWithOptions(src, opts), CropPattern(p), in.Settings, canvas)
		return Render(comp, canvas), nil
	}
	return nil, fmt.Errorf("unknown command: %s", commandName)
}

var (
	regionOutline   = color.NRGBA{0, 0, 0, 255}
	regionOutside   = color.NRGBA{160, 160, 160, 255}
	regionNoise     = color.NRGBA{220, 40, 40, 255}
	regionFillColor = color.NRGBA{40, 180, 80, 255}
)

// renderRegions paints each labelled region by how ClassifyRegions treats it.
func renderRegions(dilated *Bitmap, minSize int) *image.NRGBA {
	out := NewSolid(dilated.width, dilated.height, regionOutline)
	for _, r := range LabelRegions(dilated) {
		c := regionFillColor
		switch {
		case r.TouchesBorder:
			c = regionOutside
		case !r.Enclosed(minSize):
			c = regionNoise
		}
		for _, i := range r.Pixels {
			o := i * 4
			out.Pix[o+0], out.Pix[o+1], out.Pix[o+2], out.Pix[o+3] = c.R, c.G, c.B, c.A
		}
	}
	return out
}
