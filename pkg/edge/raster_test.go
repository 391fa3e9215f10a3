package edge

import (
	"image"
	"image/color"
	"testing"
)

func makeSolidNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
		}
	}
	return img
}

// makeVStepNRGBA builds an image that is left gray up to split and right
// gray from split on, a clean vertical boundary.
func makeVStepNRGBA(w, h, split int, left, right uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := left
			if x >= split {
				v = right
			}
			i := img.PixOffset(x, y)
			img.Pix[i+0] = v
			img.Pix[i+1] = v
			img.Pix[i+2] = v
			img.Pix[i+3] = 255
		}
	}
	return img
}

// makeDiagStepNRGBA builds an n x n image that is bright strictly below
// the main diagonal.
func makeDiagStepNRGBA(n int, dark, bright uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := dark
			if y > x {
				v = bright
			}
			i := img.PixOffset(x, y)
			img.Pix[i+0] = v
			img.Pix[i+1] = v
			img.Pix[i+2] = v
			img.Pix[i+3] = 255
		}
	}
	return img
}

func mustRaster(t *testing.T, img image.Image) *RasterImage {
	t.Helper()
	r, err := NewRasterImage(img)
	if err != nil {
		t.Fatalf("NewRasterImage failed: %v", err)
	}
	return r
}

func TestNewRasterImageCanonicalizes(t *testing.T) {
	// a non-NRGBA source with a nonzero origin must still come out as a
	// zero-based NRGBA copy
	src := image.NewRGBA(image.Rect(2, 3, 6, 8))
	src.Set(2, 3, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	src.Set(5, 7, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	r := mustRaster(t, src)
	if r.Width() != 4 || r.Height() != 5 {
		t.Fatalf("expected 4x5, got %dx%d", r.Width(), r.Height())
	}
	pix := r.NRGBA()
	if got := pix.NRGBAAt(0, 0); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Fatalf("top-left pixel mismatch: %v", got)
	}
	if got := pix.NRGBAAt(3, 4); got != (color.NRGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Fatalf("bottom-right pixel mismatch: %v", got)
	}
}

func TestNewRasterImageRejectsNilAndEmpty(t *testing.T) {
	if _, err := NewRasterImage(nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := NewRasterImage(image.NewNRGBA(image.Rect(0, 0, 0, 0))); err == nil {
		t.Fatalf("expected error for empty source")
	}
}

func TestRasterNRGBAReturnsCopy(t *testing.T) {
	src := makeSolidNRGBA(3, 3, color.NRGBA{R: 77, G: 77, B: 77, A: 255})
	r := mustRaster(t, src)
	a := r.NRGBA()
	a.Pix[0] = 0
	b := r.NRGBA()
	if b.Pix[0] != 77 {
		t.Fatalf("mutating one copy leaked into the raster")
	}
}
