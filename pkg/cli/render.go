package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Fepozopo/patternfill/pkg/maskfill"
)

// settingFlags collects repeated -set name=value flags.
type settingFlags []string

func (f *settingFlags) String() string { return strings.Join(*f, ",") }

func (f *settingFlags) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("expected name=value, got %q", v)
	}
	*f = append(*f, v)
	return nil
}

// RunRender is the non-interactive "render" subcommand. It composes the
// pattern into the outline and writes the preview image, and optionally the
// instruction JSON and the traced mask SVG.
func RunRender(cfg Config, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	outlinePath := fs.String("outline", "", "outline image (png, jpeg or gif)")
	patternPath := fs.String("pattern", "", "pattern tile image")
	presetPath := fs.String("preset", cfg.PresetPath, "settings preset (yaml or json)")
	outPath := fs.String("o", "out.png", "rendered preview output")
	jsonPath := fs.String("json", "", "write the composite instruction as JSON")
	svgPath := fs.String("svg", "", "write the traced fill mask as SVG")
	maskPath := fs.String("mask", "", "write the fill mask image")
	var sets settingFlags
	fs.Var(&sets, "set", "override a setting, name=value (repeatable): "+strings.Join(maskfill.SettingNames, ", "))
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *outlinePath == "" || *patternPath == "" {
		fs.Usage()
		return fmt.Errorf("render: -outline and -pattern are required")
	}

	s := NewSession(cfg)
	if *presetPath != "" {
		if err := s.LoadPreset(*presetPath); err != nil {
			return err
		}
	}
	for _, kv := range sets {
		name, value, _ := strings.Cut(kv, "=")
		if err := s.SetField(strings.TrimSpace(name), strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("render: -set %s: %w", kv, err)
		}
	}
	if err := s.OpenOutline(*outlinePath); err != nil {
		return fmt.Errorf("render: outline: %w", err)
	}
	if err := s.OpenPattern(*patternPath); err != nil {
		return fmt.Errorf("render: pattern: %w", err)
	}

	out, comp, err := s.Render()
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if comp.Empty() {
		fmt.Fprintln(stderr, "render: nothing to fill, output is transparent")
	}
	if err := SaveImage(*outPath, out); err != nil {
		return fmt.Errorf("render: save %s: %w", *outPath, err)
	}
	if *maskPath != "" && comp.Clip != nil {
		if err := SaveImage(*maskPath, comp.Clip); err != nil {
			return fmt.Errorf("render: save %s: %w", *maskPath, err)
		}
	}
	if *jsonPath != "" {
		doc, err := maskfill.MarshalInstruction(comp.Instruction)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*jsonPath, doc, 0o644); err != nil {
			return fmt.Errorf("render: write %s: %w", *jsonPath, err)
		}
	}
	if *svgPath != "" {
		svg, err := s.Trace()
		if err != nil {
			return fmt.Errorf("render: trace: %w", err)
		}
		if err := os.WriteFile(*svgPath, []byte(svg), 0o644); err != nil {
			return fmt.Errorf("render: write %s: %w", *svgPath, err)
		}
	}
	return nil
}
