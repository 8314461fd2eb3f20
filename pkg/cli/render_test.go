package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunRender(t *testing.T) {
	outline, pattern := writeFixtures(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "out.png")
	doc := filepath.Join(dir, "fill.json")
	svg := filepath.Join(dir, "mask.svg")
	mask := filepath.Join(dir, "mask.png")

	var stderr bytes.Buffer
	err := RunRender(DefaultConfig(), []string{
		"-outline", outline, "-pattern", pattern,
		"-o", out, "-json", doc, "-svg", svg, "-mask", mask,
		"-set", "tileH=true", "-set", "scale=0.5", "-set", "outlineOffset=4",
	}, &stderr)
	if err != nil {
		t.Fatalf("RunRender: %v (%s)", err, stderr.String())
	}

	img, _, err := LoadImage(out)
	if err != nil {
		t.Fatalf("load output: %v", err)
	}
	if got := nrgbaAt(img, 50, 50); got != red {
		t.Fatalf("expected red fill, got %v", got)
	}
	if _, _, err := LoadImage(mask); err != nil {
		t.Fatalf("load mask: %v", err)
	}

	raw, err := os.ReadFile(doc)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var parsed struct {
		Kind        string                 `json:"kind"`
		Instruction map[string]interface{} `json:"instruction"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if parsed.Kind != "tiled" {
		t.Fatalf("expected tiled instruction, got %q", parsed.Kind)
	}

	b, err := os.ReadFile(svg)
	if err != nil || !strings.Contains(string(b), "<svg") {
		t.Fatalf("expected svg output, got %v", err)
	}
}

func TestRunRenderErrors(t *testing.T) {
	outline, pattern := writeFixtures(t)
	var stderr bytes.Buffer
	if err := RunRender(DefaultConfig(), nil, &stderr); err == nil {
		t.Fatalf("expected error without inputs")
	}
	if err := RunRender(DefaultConfig(), []string{"-h"}, &stderr); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if err := RunRender(DefaultConfig(), []string{"-outline", outline, "-pattern", pattern, "-set", "zoom"}, &stderr); err == nil {
		t.Fatalf("expected error for malformed -set")
	}
	if err := RunRender(DefaultConfig(), []string{"-outline", outline, "-pattern", pattern, "-set", "zoom=2"}, &stderr); err == nil {
		t.Fatalf("expected error for unknown setting")
	}
	missing := filepath.Join(t.TempDir(), "missing.png")
	if err := RunRender(DefaultConfig(), []string{"-outline", missing, "-pattern", pattern}, &stderr); err == nil {
		t.Fatalf("expected error for missing outline")
	}
}
