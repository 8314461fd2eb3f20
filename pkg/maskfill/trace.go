package maskfill

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gotranspile/gotrace"
)

// TraceMask vectorises a fill bitmap into an SVG document whose paths outline
// the fill, for renderers that clip with vector paths instead of a mask image.
func TraceMask(fill *Bitmap) (string, error) {
	if fill == nil || fill.width == 0 || fill.height == 0 {
		return "", fmt.Errorf("trace mask: empty bitmap")
	}
	// potrace traces dark pixels: fill is black on white
	gray := image.NewGray(fill.Rect())
	for y := 0; y < fill.height; y++ {
		for x := 0; x < fill.width; x++ {
			if !fill.Get(x, y) {
				gray.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	bm := gotrace.BitmapFromGray(gray, nil)
	paths, err := gotrace.Trace(bm, nil)
	if err != nil {
		return "", fmt.Errorf("trace mask: %w", err)
	}
	var buf bytes.Buffer
	if err := gotrace.Render("svg", nil, &buf, paths, fill.width, fill.height); err != nil {
		return "", fmt.Errorf("trace mask: render svg: %w", err)
	}
	return buf.String(), nil
}

// PathData extracts the d attribute of every <path> in an SVG document.
// Paths nested in groups are included.
func PathData(svg string) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader([]byte(svg)))
	var out []string
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, fmt.Errorf("path data: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "path" {
			continue
		}
		for _, a := range se.Attr {
			if a.Name.Local == "d" {
				out = append(out, a.Value)
			}
		}
	}
}
