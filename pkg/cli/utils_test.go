package cli

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/Fepozopo/tedge/pkg/edge"
)

func TestWriteImageFormats(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(60 * x), G: uint8(60 * y), B: 128, A: 255})
		}
	}

	cases := []struct {
		name   string
		format string
	}{
		{"out.png", "png"},
		{"out.jpg", "jpeg"},
		{"out.jpeg", "jpeg"},
		{"out.gif", "gif"},
		{"out.bin", "png"}, // unknown extension falls back to PNG
	}
	for _, c := range cases {
		p := filepath.Join(dir, c.name)
		if err := WriteImage(p, img); err != nil {
			t.Fatalf("WriteImage(%s): %v", c.name, err)
		}
		f, err := os.Open(p)
		if err != nil {
			t.Fatalf("open %s: %v", c.name, err)
		}
		_, format, err := image.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode config %s: %v", c.name, err)
		}
		if format != c.format {
			t.Fatalf("%s encoded as %q; want %q", c.name, format, c.format)
		}
	}
}

func TestWriteImageCreateError(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	err := WriteImage(filepath.Join(t.TempDir(), "missing", "out.png"), img)
	if err == nil {
		t.Fatalf("expected error writing into a missing directory")
	}
}

func TestImageInfo(t *testing.T) {
	r, err := edge.NewRasterImage(image.NewNRGBA(image.Rect(0, 0, 8, 5)))
	if err != nil {
		t.Fatalf("NewRasterImage: %v", err)
	}
	got := ImageInfo(r)
	want := "Format: UNKNOWN, Width: 8, Height: 5"
	if got != want {
		t.Fatalf("ImageInfo = %q; want %q", got, want)
	}
}
