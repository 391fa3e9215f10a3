package cli

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"os/exec"
	"strings"
)

// Inline terminal previews. Three backends: the kitty graphics protocol,
// the iTerm2-style OSC 1337 sequence, and piping through chafa for
// terminals that support neither.

// Cell geometry assumed when the terminal does not report pixel sizes.
const (
	previewCellW = 8
	previewCellH = 16

	previewMinCols = 6
	previewMaxCols = 80
	previewMinRows = 3
	previewMaxRows = 40
)

type previewSize struct {
	Cols, Rows     int
	PixelW, PixelH int
}

// computePreviewSize scales the image down to fit the preview cell box,
// never upscaling, and reports both cell and pixel dimensions.
func computePreviewSize(img image.Image) previewSize {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	maxW := float64(previewMaxCols * previewCellW)
	maxH := float64(previewMaxRows * previewCellH)
	scale := math.Min(1, math.Min(maxW/float64(w), maxH/float64(h)))
	pw := int(math.Round(float64(w) * scale))
	ph := int(math.Round(float64(h) * scale))
	cols := clampCells(int(math.Ceil(float64(pw)/previewCellW)), previewMinCols, previewMaxCols)
	rows := clampCells(int(math.Ceil(float64(ph)/previewCellH)), previewMinRows, previewMaxRows)
	return previewSize{Cols: cols, Rows: rows, PixelW: pw, PixelH: ph}
}

func clampCells(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isKittyTerm() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "kitty") || strings.Contains(term, "ghostty") {
		return true
	}
	return os.Getenv("KONSOLE_VERSION") != ""
}

func isInlineCapable() bool {
	if os.Getenv("ITERM_SESSION_ID") != "" {
		return true
	}
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "Tabby":
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "wezterm") || strings.Contains(term, "iterm")
}

func hasChafa() bool {
	_, err := exec.LookPath("chafa")
	return err == nil
}

// PreviewSupported reports whether any preview backend can work in the
// current terminal.
func PreviewSupported() bool {
	return isInlineCapable() || isKittyTerm() || hasChafa()
}

// PreviewImage renders img inline in the current terminal. A non-empty
// backend ("kitty", "inline", "chafa") forces that protocol; otherwise
// the first supported one wins.
func PreviewImage(img image.Image, backend string) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	blob := buf.Bytes()
	size := computePreviewSize(img)

	switch strings.ToLower(backend) {
	case "kitty":
		return sendKittyImage(blob, size)
	case "inline", "iterm":
		return sendInlineImage(blob, size)
	case "chafa":
		return sendChafaImage(blob, size)
	case "":
	default:
		debugf("unknown preview backend %q, falling back to detection", backend)
	}

	if isInlineCapable() {
		return sendInlineImage(blob, size)
	}
	if isKittyTerm() {
		return sendKittyImage(blob, size)
	}
	if hasChafa() {
		return sendChafaImage(blob, size)
	}
	return fmt.Errorf("no supported terminal preview backend")
}

// sendKittyImage transmits PNG bytes with the kitty graphics protocol,
// chunking the base64 payload at 4096 characters.
func sendKittyImage(pngBytes []byte, size previewSize) error {
	enc := base64.StdEncoding.EncodeToString(pngBytes)
	const chunkSize = 4096
	first := true
	for len(enc) > 0 {
		n := chunkSize
		if n > len(enc) {
			n = len(enc)
		}
		chunk := enc[:n]
		enc = enc[n:]
		more := "0"
		if len(enc) > 0 {
			more = "1"
		}
		if first {
			fmt.Printf("\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%s;%s\x1b\\", size.Cols, size.Rows, more, chunk)
			first = false
		} else {
			fmt.Printf("\x1b_Gm=%s;%s\x1b\\", more, chunk)
		}
	}
	fmt.Println()
	return nil
}

// sendInlineImage transmits PNG bytes with the OSC 1337 File sequence
// understood by iTerm2, WezTerm and friends.
func sendInlineImage(pngBytes []byte, size previewSize) error {
	enc := base64.StdEncoding.EncodeToString(pngBytes)
	name := base64.StdEncoding.EncodeToString([]byte("preview.png"))
	fmt.Printf("\x1b]1337;File=name=%s;inline=1;size=%d;width=%dpx;height=%dpx;:%s\a",
		name, len(pngBytes), size.PixelW, size.PixelH, enc)
	fmt.Println()
	return nil
}

// sendChafaImage pipes PNG bytes through the chafa binary, which renders
// block characters on any terminal.
func sendChafaImage(pngBytes []byte, size previewSize) error {
	cmd := exec.Command("chafa", "--fill=block", "--symbols=block",
		"-s", fmt.Sprintf("%dx%d", size.Cols, size.Rows), "-")
	cmd.Stdin = bytes.NewReader(pngBytes)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
