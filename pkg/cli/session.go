package cli

import (
	"fmt"
	"image"

	"github.com/Fepozopo/patternfill/pkg/maskfill"
)

// Session is the state of one editing session: the outline and pattern
// images, the current pattern settings and the last result shown.
type Session struct {
	Config Config

	Outline     image.Image
	OutlinePath string
	Pattern     image.Image
	PatternPath string

	Settings   maskfill.PatternSettings
	PresetPath string

	// Current is the most recent command or render result.
	Current image.Image
}

// NewSession returns an empty session with default settings.
func NewSession(cfg Config) *Session {
	return &Session{Config: cfg, Settings: maskfill.DefaultSettings()}
}

// OpenOutline loads the outline image, downscaling it to Config.MaxDimension.
func (s *Session) OpenOutline(path string) error {
	img, _, err := LoadImage(path)
	if err != nil {
		return err
	}
	if s.Config.MaxDimension > 0 {
		img = maskfill.FitWithin(img, s.Config.MaxDimension)
	}
	s.Outline, s.OutlinePath = img, path
	s.Current = img
	return nil
}

// OpenPattern loads the pattern tile.
func (s *Session) OpenPattern(path string) error {
	img, _, err := LoadImage(path)
	if err != nil {
		return err
	}
	s.Pattern, s.PatternPath = img, path
	return nil
}

// LoadPreset replaces the settings with the preset at path.
func (s *Session) LoadPreset(path string) error {
	settings, err := LoadPreset(path)
	if err != nil {
		return err
	}
	s.Settings, s.PresetPath = settings, path
	return nil
}

// SetField edits one pattern setting by name.
func (s *Session) SetField(name, value string) error {
	next, err := s.Settings.SetField(name, value)
	if err != nil {
		return err
	}
	s.Settings = next.Normalized()
	return nil
}

func (s *Session) inputs() maskfill.Inputs {
	return maskfill.Inputs{
		Outline:  s.Outline,
		Pattern:  s.Pattern,
		Settings: s.Settings,
		Options:  &s.Config.Options,
	}
}

// Apply runs a registered command against the session images and keeps the result.
func (s *Session) Apply(name string, args []string) (image.Image, error) {
	out, err := maskfill.ApplyCommand(s.inputs(), name, args)
	if err != nil {
		return nil, err
	}
	s.Current = out
	return out, nil
}

// Mask builds the fill mask of the current outline.
func (s *Session) Mask() (maskfill.MaskResult, error) {
	if s.Outline == nil {
		return maskfill.MaskResult{}, fmt.Errorf("no outline loaded")
	}
	return maskfill.BuildMaskWithOptions(s.Outline, s.Config.Options), nil
}

// Compose computes the composition for the current outline, pattern and
// settings on a canvas the size of the outline.
func (s *Session) Compose() (maskfill.Composition, maskfill.Size, error) {
	mask, err := s.Mask()
	if err != nil {
		return maskfill.Composition{}, maskfill.Size{}, err
	}
	if s.Pattern == nil {
		return maskfill.Composition{}, maskfill.Size{}, fmt.Errorf("no pattern loaded")
	}
	b := s.Outline.Bounds()
	canvas := maskfill.Size{Width: b.Dx(), Height: b.Dy()}
	tile := maskfill.CropPattern(maskfill.ToNRGBA(s.Pattern))
	return maskfill.Compose(mask, tile, s.Settings, canvas), canvas, nil
}

// Render composes and rasterises the current state.
func (s *Session) Render() (*image.NRGBA, maskfill.Composition, error) {
	comp, canvas, err := s.Compose()
	if err != nil {
		return nil, comp, err
	}
	out := maskfill.Render(comp, canvas)
	s.Current = out
	return out, comp, nil
}

// Trace vectorises the fill mask, including any outline offset, into an SVG document.
func (s *Session) Trace() (string, error) {
	mask, err := s.Mask()
	if err != nil {
		return "", err
	}
	if mask.Empty() {
		return "", fmt.Errorf("nothing to trace: mask is empty")
	}
	grown := maskfill.DilateMask(mask.Mask, maskfill.OffsetRadius(s.Settings.Normalized().OutlineOffset))
	return maskfill.TraceMask(maskfill.MaskBitmap(grown))
}
