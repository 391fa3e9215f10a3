package edge

import (
	"image/color"
	"math"
	"testing"
)

func TestIntensityRec601(t *testing.T) {
	src := makeSolidNRGBA(2, 2, color.NRGBA{R: 255, A: 255})
	in := mustRaster(t, src).Intensity(Rec601)
	want := 0.299 * 255
	if math.Abs(in.At(0, 0)-want) > 1e-9 {
		t.Fatalf("pure red luminance: got %v want %v", in.At(0, 0), want)
	}

	src = makeSolidNRGBA(2, 2, color.NRGBA{G: 255, A: 255})
	in = mustRaster(t, src).Intensity(Rec601)
	want = 0.587 * 255
	if math.Abs(in.At(1, 1)-want) > 1e-9 {
		t.Fatalf("pure green luminance: got %v want %v", in.At(1, 1), want)
	}
}

func TestIntensityZeroWeightsDefaultToRec601(t *testing.T) {
	src := makeSolidNRGBA(2, 1, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	in := mustRaster(t, src).Intensity(LuminanceWeights{})
	if math.Abs(in.At(0, 0)-100) > 1e-9 {
		t.Fatalf("gray pixel should stay 100, got %v", in.At(0, 0))
	}
}

func TestIntensityRec709Differs(t *testing.T) {
	src := makeSolidNRGBA(1, 1, color.NRGBA{R: 255, A: 255})
	r := mustRaster(t, src)
	a := r.Intensity(Rec601).At(0, 0)
	b := r.Intensity(Rec709).At(0, 0)
	if a == b {
		t.Fatalf("Rec601 and Rec709 should weight red differently")
	}
}

func TestIntensityClampedSampling(t *testing.T) {
	in := &IntensityBuffer{W: 2, H: 2, Pix: []float64{1, 2, 3, 4}}
	if got := in.atClamped(-5, 0); got != 1 {
		t.Fatalf("left clamp: got %v", got)
	}
	if got := in.atClamped(5, 3); got != 4 {
		t.Fatalf("bottom-right clamp: got %v", got)
	}
}
