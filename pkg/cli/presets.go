package cli

import (
	"fmt"
	"os"

	"github.com/Fepozopo/patternfill/pkg/maskfill"
)

// LoadPreset reads a YAML (or JSON) settings document. Fields missing from the
// document keep their defaults.
func LoadPreset(path string) (maskfill.PatternSettings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return maskfill.DefaultSettings(), fmt.Errorf("read preset: %w", err)
	}
	s, err := maskfill.DecodeSettings(b)
	if err != nil {
		return maskfill.DefaultSettings(), fmt.Errorf("preset %s: %w", path, err)
	}
	return s.Normalized(), nil
}

// SavePreset writes s to path as YAML.
func SavePreset(path string, s maskfill.PatternSettings) error {
	b, err := maskfill.EncodeSettings(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write preset: %w", err)
	}
	return nil
}
