// Package maskfill: registry of pipeline commands.
//
// This file mirrors the commands implemented in ApplyCommand in
// pkg/maskfill/engine.go. Keep both in step so the CLI command picker and
// help text read a single source of truth.

package maskfill

// ArgSpec describes a single argument for a command. Fields are textual
// and intended for help/validation UI rather than machine-enforced typing.
type ArgSpec struct {
	Name        string // human name
	Type        string // "int", "float", "bool", "string"
	Required    bool
	Default     string // textual default (for help only)
	Description string
}

// CommandSpec defines a single command and its expected arguments.
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string // short usage string
	Description string // brief description
}

// Commands is the list of commands implemented by ApplyCommand.
var Commands = []CommandSpec{
	{
		Name:        "boundary",
		Args:        []ArgSpec{},
		Usage:       "boundary",
		Description: "Show outline ink (alpha > 10 and luminance < 248) as a white mask.",
	},
	{
		Name:        "gapClose",
		Args:        []ArgSpec{{"radius", "int", false, "2", "square half-width"}},
		Usage:       "gapClose [radius]",
		Description: "Dilate the outline ink to close small gaps.",
	},
	{
		Name:        "regions",
		Args:        []ArgSpec{{"minSize", "int", false, "100", "noise threshold in pixels"}},
		Usage:       "regions [minSize]",
		Description: "Color regions: green enclosed, red noise, gray outside, black outline.",
	},
	{
		Name:        "mask",
		Args:        []ArgSpec{{"gapRadius", "int", false, "2", "gap-closing radius"}, {"minSize", "int", false, "100", "noise threshold in pixels"}},
		Usage:       "mask [gapRadius] [minSize]",
		Description: "Build the fill mask (enclosed regions, or the silhouette as fallback).",
	},
	{
		Name:        "offset",
		Args:        []ArgSpec{{"outlineOffset", "float", true, "", "outline offset in pixels, halved into a radius"}},
		Usage:       "offset <outlineOffset>",
		Description: "Build the fill mask and grow it by the outline offset.",
	},
	{
		Name:        "crop",
		Args:        []ArgSpec{},
		Usage:       "crop",
		Description: "Trim transparent margins from the pattern tile.",
	},
	{
		Name:        "invert",
		Args:        []ArgSpec{},
		Usage:       "invert",
		Description: "Invert the pattern tile colors, keeping alpha.",
	},
	{
		Name:        "fit",
		Args:        []ArgSpec{{"maxDim", "int", true, "", "maximum width or height"}},
		Usage:       "fit <maxDim>",
		Description: "Downscale the outline so neither side exceeds maxDim (Catmull-Rom).",
	},
	{
		Name:        "orient",
		Args:        []ArgSpec{{"orientation", "int", true, "", "EXIF orientation 1..8"}},
		Usage:       "orient <orientation>",
		Description: "Apply an EXIF orientation to the outline.",
	},
	{
		Name:        "compose",
		Args:        []ArgSpec{},
		Usage:       "compose",
		Description: "Fill the outline mask with the cropped pattern using the current settings.",
	},
}

// LookupCommand returns the spec for name.
func LookupCommand(name string) (CommandSpec, bool) {
	for _, c := range Commands {
		if c.Name == name {
			return c, true
		}
	}
	return CommandSpec{}, false
}
