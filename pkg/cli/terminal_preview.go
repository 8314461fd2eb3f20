package cli

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"os/exec"
	"strings"
)

// Terminal preview for rendered masks and compositions.
//
// Backends, in default order:
//   - inline: iTerm2-style OSC 1337 (iTerm2, WezTerm, Warp, Tabby, VSCode, ...)
//   - kitty: kitty graphics protocol, chunked base64 inside ESC _G ... ESC \
//   - sixel: piped to img2sixel
//   - chafa: block-symbol approximation for anything else
//
// PREVIEW_BACKEND forces one backend first; PREVIEW_DEBUG=1 logs detection to stderr.

// previewOut is where escape sequences are written.
var previewOut io.Writer = os.Stdout

func previewDebug() bool {
	v := os.Getenv("PREVIEW_DEBUG")
	return v == "1" || v == "true"
}

func debugf(format string, args ...interface{}) {
	if previewDebug() {
		fmt.Fprintf(os.Stderr, "patternfill-preview: "+format+"\n", args...)
	}
}

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	// ghostty implements the kitty protocol
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "kitty") || strings.Contains(term, "ghostty")
}

func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "VSCode", "Tabby", "Bobcat":
		debugf("TERM_PROGRAM indicates inline-capable: %s", os.Getenv("TERM_PROGRAM"))
		return true
	}
	if os.Getenv("ITERM_SESSION_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "wezterm") || strings.Contains(term, "vscode")
}

func isSixelCapable() bool {
	if os.Getenv("SIXEL_PREVIEW") == "1" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "foot") || strings.Contains(term, "mlterm") {
		return true
	}
	return os.Getenv("WT_SESSION") != ""
}

func hasChafa() bool {
	if os.Getenv("NO_CHAFA") == "1" {
		return false
	}
	_, err := exec.LookPath("chafa")
	return err == nil
}

// PreviewSupported reports whether any preview backend is likely to work.
func PreviewSupported() bool {
	return isKitty() || isInlineImageCapable() || isSixelCapable() || hasChafa()
}

// postImageNewlines returns how many lines to advance after an image so the
// prompt lands below it.
func postImageNewlines(rows int) int {
	switch {
	case rows <= 2:
		return 1
	case rows <= 6:
		return 2
	case rows <= 20:
		return 3
	}
	return 4
}

// PreviewSize conveys a target placement for terminal preview backends.
type PreviewSize struct {
	Cols        int // terminal character columns
	Rows        int // terminal character rows
	PixelWidth  int // approximate pixel width (Cols * cellWidth)
	PixelHeight int // approximate pixel height (Rows * cellHeight)
}

// computePreviewSize maps an image's pixel dimensions to a character cell
// area, preserving aspect ratio and never scaling up.
func computePreviewSize(img image.Image) PreviewSize {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	const (
		charW   = 8
		charH   = 16
		minCols = 6
		minRows = 3
		maxCols = 80
		maxRows = 40
	)
	scale := 1.0
	if w > 0 && h > 0 {
		scale = math.Min(1, math.Min(float64(maxCols*charW)/float64(w), float64(maxRows*charH)/float64(h)))
	}
	cols := int(math.Round(float64(w) * scale / charW))
	rows := int(math.Round(float64(h) * scale / charH))
	cols = min(max(cols, minCols), maxCols)
	rows = min(max(rows, minRows), maxRows)

	return PreviewSize{
		Cols:        cols,
		Rows:        rows,
		PixelWidth:  cols * charW,
		PixelHeight: rows * charH,
	}
}

// PreviewImage encodes img as PNG and shows it in the terminal.
func PreviewImage(img image.Image) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("png encode failed: %w", err)
	}
	return previewBytes(buf.Bytes(), computePreviewSize(img))
}

type previewBackend struct {
	name      string
	available func() bool
	send      func([]byte, PreviewSize) error
}

var previewBackends = []previewBackend{
	{"inline", isInlineImageCapable, sendInlineImage},
	{"kitty", isKitty, sendKittyImage},
	{"sixel", isSixelCapable, sendSixelImage},
	{"chafa", hasChafa, sendChafaImage},
}

func previewBytes(blob []byte, size PreviewSize) error {
	if len(blob) == 0 {
		return fmt.Errorf("empty image blob")
	}
	if v := strings.ToLower(os.Getenv("PREVIEW_BACKEND")); v != "" {
		if v == "iterm" || v == "wezterm" {
			v = "inline"
		}
		for _, b := range previewBackends {
			if b.name != v {
				continue
			}
			err := b.send(blob, size)
			if err == nil {
				return nil
			}
			debugf("PREVIEW_BACKEND=%s failed: %v", v, err)
		}
	}
	var lastErr error
	for _, b := range previewBackends {
		if !b.available() {
			continue
		}
		debugf("attempting %s preview", b.name)
		if err := b.send(blob, size); err != nil {
			debugf("%s preview failed: %v", b.name, err)
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr != nil {
		return fmt.Errorf("preview failed: %w", lastErr)
	}
	return fmt.Errorf("no preview protocol matched")
}

func newlines(n int) error {
	_, err := io.WriteString(previewOut, strings.Repeat("\n", n))
	return err
}

// sendKittyImage sends PNG bytes with the kitty graphics protocol in chunks of
// at most 4096 base64 bytes. The first chunk carries the placement (c, r);
// q=2 suppresses terminal responses.
func sendKittyImage(data []byte, size PreviewSize) error {
	enc := base64.StdEncoding.EncodeToString(data)
	const chunkSize = 4096
	for pos := 0; pos < len(enc); pos += chunkSize {
		end := min(pos+chunkSize, len(enc))
		more := "0"
		if end < len(enc) {
			more = "1"
		}
		var seq string
		if pos == 0 {
			seq = fmt.Sprintf("\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%s;%s\x1b\\", size.Cols, size.Rows, more, enc[pos:end])
		} else {
			seq = "\x1b_Gm=" + more + ";" + enc[pos:end] + "\x1b\\"
		}
		if _, err := io.WriteString(previewOut, seq); err != nil {
			return err
		}
	}
	return newlines(postImageNewlines(size.Rows))
}

// sendInlineImage emits the iTerm2-style inline image OSC (1337) sequence.
func sendInlineImage(data []byte, size PreviewSize) error {
	meta := fmt.Sprintf("size=%d;", len(data))
	if size.PixelWidth > 0 && size.PixelHeight > 0 {
		meta += fmt.Sprintf("width=%dpx;height=%dpx;", size.PixelWidth, size.PixelHeight)
	}
	seq := "\x1b]1337;File=name=preview.png;inline=1;" + meta + ":" + base64.StdEncoding.EncodeToString(data) + "\a"
	if _, err := io.WriteString(previewOut, seq); err != nil {
		return err
	}
	return newlines(postImageNewlines(0))
}

func runPreviewTool(data []byte, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = previewOut
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

// sendSixelImage pipes the PNG to img2sixel.
func sendSixelImage(data []byte, size PreviewSize) error {
	if err := runPreviewTool(data, "img2sixel", "-"); err != nil {
		return err
	}
	return newlines(postImageNewlines(0))
}

// sendChafaImage renders block symbols with chafa at the computed size.
func sendChafaImage(data []byte, size PreviewSize) error {
	if !hasChafa() {
		return fmt.Errorf("chafa not available")
	}
	args := []string{"--fill=block", "--symbols=block", "-s", fmt.Sprintf("%dx%d", size.Cols, size.Rows), "-"}
	if err := runPreviewTool(data, "chafa", args...); err != nil {
		return err
	}
	return newlines(postImageNewlines(size.Rows))
}
