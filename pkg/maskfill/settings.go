package maskfill

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MinScale is the smallest pattern scale the compositor accepts.
const MinScale = 0.01

// ErrUnknownSetting is returned by SetField for names that are not pattern settings.
var ErrUnknownSetting = errors.New("unknown pattern setting")

// PatternSettings is the read-only configuration of one compositing pass.
// Values are immutable by convention: every With* method and SetField return
// a modified copy and leave the receiver alone.
type PatternSettings struct {
	Scale         float64 `json:"scale" yaml:"scale"`
	Rotation      float64 `json:"rotation" yaml:"rotation"`
	PosX          float64 `json:"posX" yaml:"posX"`
	PosY          float64 `json:"posY" yaml:"posY"`
	Stagger       float64 `json:"stagger" yaml:"stagger"`
	OutlineOffset float64 `json:"outlineOffset" yaml:"outlineOffset"`
	TileH         bool    `json:"tileH" yaml:"tileH"`
	TileV         bool    `json:"tileV" yaml:"tileV"`
	Invert        bool    `json:"invert" yaml:"invert"`
}

// SettingNames lists the recognized setting names in display order.
var SettingNames = []string{"scale", "rotation", "posX", "posY", "stagger", "outlineOffset", "tileH", "tileV", "invert"}

// DefaultSettings returns scale 1 with every other field zero or false.
func DefaultSettings() PatternSettings {
	return PatternSettings{Scale: 1}
}

// Tiled reports whether the pattern repeats on at least one axis.
func (s PatternSettings) Tiled() bool { return s.TileH || s.TileV }

func (s PatternSettings) WithScale(v float64) PatternSettings         { s.Scale = v; return s }
func (s PatternSettings) WithRotation(v float64) PatternSettings      { s.Rotation = v; return s }
func (s PatternSettings) WithPosition(x, y float64) PatternSettings   { s.PosX, s.PosY = x, y; return s }
func (s PatternSettings) WithStagger(v float64) PatternSettings       { s.Stagger = v; return s }
func (s PatternSettings) WithOutlineOffset(v float64) PatternSettings { s.OutlineOffset = v; return s }
func (s PatternSettings) WithInvert(v bool) PatternSettings           { s.Invert = v; return s }

// WithTiling sets the horizontal and vertical tiling flags.
func (s PatternSettings) WithTiling(h, v bool) PatternSettings {
	s.TileH, s.TileV = h, v
	return s
}

// SetField returns a copy with the named field parsed from value.
// Names are matched case-insensitively against SettingNames.
func (s PatternSettings) SetField(name, value string) (PatternSettings, error) {
	value = strings.TrimSpace(value)
	parseF := func() (float64, error) {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", name, err)
		}
		return f, nil
	}
	parseB := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %w", name, err)
		}
		return b, nil
	}
	var err error
	switch strings.ToLower(name) {
	case "scale":
		s.Scale, err = parseF()
	case "rotation":
		s.Rotation, err = parseF()
	case "posx":
		s.PosX, err = parseF()
	case "posy":
		s.PosY, err = parseF()
	case "stagger":
		s.Stagger, err = parseF()
	case "outlineoffset":
		s.OutlineOffset, err = parseF()
	case "tileh":
		s.TileH, err = parseB()
	case "tilev":
		s.TileV, err = parseB()
	case "invert":
		s.Invert, err = parseB()
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownSetting, name)
	}
	return s, err
}

// Field returns the named field formatted as text.
func (s PatternSettings) Field(name string) (string, error) {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	switch strings.ToLower(name) {
	case "scale":
		return f(s.Scale), nil
	case "rotation":
		return f(s.Rotation), nil
	case "posx":
		return f(s.PosX), nil
	case "posy":
		return f(s.PosY), nil
	case "stagger":
		return f(s.Stagger), nil
	case "outlineoffset":
		return f(s.OutlineOffset), nil
	case "tileh":
		return strconv.FormatBool(s.TileH), nil
	case "tilev":
		return strconv.FormatBool(s.TileV), nil
	case "invert":
		return strconv.FormatBool(s.Invert), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSetting, name)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Normalized clamps values a faulty caller may have pushed out of range:
// rotation wraps into [0,360), scale is floored at MinScale, a negative
// outline offset becomes 0 and non-finite numbers fall back to their defaults.
func (s PatternSettings) Normalized() PatternSettings {
	in := s
	if !finite(s.Scale) {
		s.Scale = 1
	}
	if s.Scale < MinScale {
		s.Scale = MinScale
	}
	if !finite(s.Rotation) {
		s.Rotation = 0
	}
	s.Rotation = math.Mod(s.Rotation, 360)
	if s.Rotation < 0 {
		s.Rotation += 360
	}
	if s.Rotation == 0 {
		// drop negative zero
		s.Rotation = 0
	}
	if !finite(s.PosX) {
		s.PosX = 0
	}
	if !finite(s.PosY) {
		s.PosY = 0
	}
	if !finite(s.Stagger) {
		s.Stagger = 0
	}
	if !finite(s.OutlineOffset) || s.OutlineOffset < 0 {
		s.OutlineOffset = 0
	}
	if s != in {
		Logger().Warn("maskfill: pattern settings normalized",
			"scale", in.Scale, "rotation", in.Rotation, "outlineOffset", in.OutlineOffset)
	}
	return s
}

// DecodeSettings reads a YAML (or JSON) settings document on top of
// DefaultSettings. Missing fields keep their defaults and unknown fields are ignored.
func DecodeSettings(data []byte) (PatternSettings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}

// EncodeSettings writes s as a YAML document.
func EncodeSettings(s PatternSettings) ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return out, nil
}
