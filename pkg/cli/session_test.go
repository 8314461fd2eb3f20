package cli

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/Fepozopo/patternfill/pkg/maskfill"
)

func TestSessionRender(t *testing.T) {
	outline, pattern := writeFixtures(t)
	s := NewSession(DefaultConfig())
	if err := s.OpenOutline(outline); err != nil {
		t.Fatalf("OpenOutline: %v", err)
	}
	if err := s.OpenPattern(pattern); err != nil {
		t.Fatalf("OpenPattern: %v", err)
	}
	out, comp, err := s.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if _, ok := comp.Instruction.(maskfill.SinglePlacement); !ok {
		t.Fatalf("expected a single placement, got %T", comp.Instruction)
	}
	if got := nrgbaAt(out, 50, 50); got != red {
		t.Fatalf("expected red inside the ring, got %v", got)
	}
	if nrgbaAt(out, 2, 2).A != 0 || nrgbaAt(out, 50, 15).A != 0 {
		t.Fatalf("pattern leaked outside the enclosed region")
	}
	if s.Current != out {
		t.Fatalf("render result should become the current image")
	}
}

func TestSessionOutlineGuard(t *testing.T) {
	outline, _ := writeFixtures(t)
	cfg := DefaultConfig()
	cfg.MaxDimension = 50
	s := NewSession(cfg)
	if err := s.OpenOutline(outline); err != nil {
		t.Fatalf("OpenOutline: %v", err)
	}
	if b := s.Outline.Bounds(); b.Dx() != 50 || b.Dy() != 50 {
		t.Fatalf("expected 50x50 outline, got %v", b)
	}
}

func TestSessionSetFieldAndApply(t *testing.T) {
	outline, pattern := writeFixtures(t)
	s := NewSession(DefaultConfig())
	if _, _, err := s.Render(); err == nil {
		t.Fatalf("render without an outline must fail")
	}
	if err := s.OpenOutline(outline); err != nil {
		t.Fatalf("OpenOutline: %v", err)
	}
	if _, _, err := s.Compose(); err == nil || !strings.Contains(err.Error(), "pattern") {
		t.Fatalf("compose without a pattern must fail, got %v", err)
	}
	if err := s.OpenPattern(pattern); err != nil {
		t.Fatalf("OpenPattern: %v", err)
	}
	if err := s.SetField("tileh", "true"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if err := s.SetField("rotation", "-30"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if !s.Settings.TileH || s.Settings.Rotation != 330 {
		t.Fatalf("unexpected settings %+v", s.Settings)
	}
	if err := s.SetField("zoom", "2"); !errors.Is(err, maskfill.ErrUnknownSetting) {
		t.Fatalf("expected ErrUnknownSetting, got %v", err)
	}
	comp, _, err := s.Compose()
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if _, ok := comp.Instruction.(maskfill.TiledFill); !ok {
		t.Fatalf("expected tiled fill, got %T", comp.Instruction)
	}
	out, err := s.Apply("mask", nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := nrgbaAt(out, 50, 50); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Fatalf("expected the hole to be part of the mask, got %v", got)
	}
}

func TestSessionTrace(t *testing.T) {
	outline, _ := writeFixtures(t)
	s := NewSession(DefaultConfig())
	if _, err := s.Trace(); err == nil {
		t.Fatalf("trace without an outline must fail")
	}
	if err := s.OpenOutline(outline); err != nil {
		t.Fatalf("OpenOutline: %v", err)
	}
	svg, err := s.Trace()
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	paths, err := maskfill.PathData(svg)
	if err != nil || len(paths) == 0 {
		t.Fatalf("expected traced paths, got %v, %v", paths, err)
	}
}

func TestSessionZeroOptionsAgree(t *testing.T) {
	outline := solidImage(60, 60, color.NRGBA{255, 255, 255, 255})
	for i := 10; i < 50; i++ {
		for _, p := range [][2]int{{i, 10}, {i, 49}, {10, i}, {49, i}} {
			outline.SetNRGBA(p[0], p[1], color.NRGBA{0, 0, 0, 255})
		}
	}
	outline.SetNRGBA(30, 10, color.NRGBA{255, 255, 255, 255})

	cfg := DefaultConfig()
	cfg.Options = maskfill.MaskOptions{}
	s := NewSession(cfg)
	s.Outline = outline
	res, err := s.Mask()
	if err != nil {
		t.Fatalf("Mask: %v", err)
	}
	applied, err := s.Apply("mask", nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got, want := nrgbaAt(applied, 30, 30), nrgbaAt(res.Mask, 30, 30); got != want || want.A != 0 {
		t.Fatalf("mask command and Session.Mask disagree at the center: %v vs %v", got, want)
	}
}
