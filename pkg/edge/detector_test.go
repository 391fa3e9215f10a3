package edge

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"
)

func TestRunAllOnDiagonalStep(t *testing.T) {
	img := mustRaster(t, makeDiagStepNRGBA(4, 0, 200))
	det := NewDetector(DefaultOptions())
	res, err := det.Run(context.Background(), DetectionRequest{
		Image:      img,
		Algorithms: AllAlgorithms(),
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(res.EdgeMaps) != 3 {
		t.Fatalf("expected exactly 3 edge maps, got %d", len(res.EdgeMaps))
	}
	for _, a := range AllAlgorithms() {
		m := res.EdgeMaps[a]
		if m == nil {
			t.Fatalf("missing edge map for %s", a)
		}
		if m.W != 4 || m.H != 4 {
			t.Fatalf("%s map is %dx%d, want 4x4", a, m.W, m.H)
		}
	}
	// the diagonal boundary must show up in the gradient reducers
	sum := 0.0
	for _, v := range res.EdgeMaps[Sobel].Pix {
		sum += v
	}
	if sum == 0 {
		t.Fatalf("sobel map is blank for an image with a diagonal boundary")
	}
}

func TestRunSingleAlgorithm(t *testing.T) {
	img := mustRaster(t, makeVStepNRGBA(6, 4, 3, 0, 200))
	det := NewDetector(DefaultOptions())
	res, err := det.Run(context.Background(), DetectionRequest{
		Image:      img,
		Algorithms: []Algorithm{Prewitt},
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(res.EdgeMaps) != 1 {
		t.Fatalf("expected exactly 1 edge map, got %d", len(res.EdgeMaps))
	}
	if res.EdgeMaps[Prewitt] == nil {
		t.Fatalf("result keyed by the wrong algorithm: %v", res.EdgeMaps)
	}
}

func TestRunDuplicateSelectionCollapses(t *testing.T) {
	img := mustRaster(t, makeVStepNRGBA(6, 4, 3, 0, 200))
	det := NewDetector(DefaultOptions())
	res, err := det.Run(context.Background(), DetectionRequest{
		Image:      img,
		Algorithms: []Algorithm{Sobel, Sobel, Sobel},
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(res.EdgeMaps) != 1 {
		t.Fatalf("duplicates should collapse to one key, got %d", len(res.EdgeMaps))
	}
}

func TestRunEmptySelection(t *testing.T) {
	img := mustRaster(t, makeVStepNRGBA(6, 4, 3, 0, 200))
	det := NewDetector(DefaultOptions())
	_, err := det.Run(context.Background(), DetectionRequest{Image: img})
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("empty selection should be a ConfigError, got %v", err)
	}
}

func TestRunNilImage(t *testing.T) {
	det := NewDetector(DefaultOptions())
	_, err := det.Run(context.Background(), DetectionRequest{Algorithms: []Algorithm{Sobel}})
	var perr *ProcessingError
	if !errors.As(err, &perr) {
		t.Fatalf("nil image should be a ProcessingError, got %v", err)
	}
}

func TestRunRejectsBadCannyConfigBeforeWork(t *testing.T) {
	opts := DefaultOptions()
	opts.Canny = CannyConfig{LowThreshold: 100, HighThreshold: 100}
	det := NewDetector(opts)
	img := mustRaster(t, makeVStepNRGBA(6, 4, 3, 0, 200))
	_, err := det.Run(context.Background(), DetectionRequest{
		Image:      img,
		Algorithms: []Algorithm{Sobel, Canny},
	})
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("invalid canny config should fail the whole request, got %v", err)
	}
	// no partial result: the detector must not have produced anything
	if det.cached != nil {
		t.Fatalf("request should fail before any shared stage runs")
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	det := NewDetector(DefaultOptions())
	img := mustRaster(t, makeVStepNRGBA(6, 4, 3, 0, 200))
	_, err := det.Run(ctx, DetectionRequest{Image: img, Algorithms: []Algorithm{Sobel}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDetectorReusesSharedStages(t *testing.T) {
	img := mustRaster(t, makeDiagStepNRGBA(8, 0, 200))
	det := NewDetector(DefaultOptions())
	ctx := context.Background()

	if _, err := det.Run(ctx, DetectionRequest{Image: img, Algorithms: []Algorithm{Sobel}}); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	st := det.cached
	if st == nil || st.img != img {
		t.Fatalf("detector should cache the image state")
	}
	g := st.fields[Sobel]
	if g == nil {
		t.Fatalf("sobel field should be cached after the first run")
	}

	if _, err := det.Run(ctx, DetectionRequest{Image: img, Algorithms: []Algorithm{Canny, Prewitt}}); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if det.cached != st {
		t.Fatalf("same image should reuse the cached state")
	}
	if st.fields[Sobel] != g {
		t.Fatalf("canny should reuse the sobel gradient field, not convolve again")
	}
	if st.fields[Prewitt] == nil {
		t.Fatalf("prewitt field should be cached alongside")
	}
}

func TestDetectorEvictsOnNewImage(t *testing.T) {
	det := NewDetector(DefaultOptions())
	ctx := context.Background()
	img1 := mustRaster(t, makeVStepNRGBA(6, 4, 3, 0, 200))
	img2 := mustRaster(t, makeVStepNRGBA(6, 4, 3, 0, 100))

	if _, err := det.Run(ctx, DetectionRequest{Image: img1, Algorithms: []Algorithm{Sobel}}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if _, err := det.Run(ctx, DetectionRequest{Image: img2, Algorithms: []Algorithm{Sobel}}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if det.cached == nil || det.cached.img != img2 {
		t.Fatalf("cache should follow the most recent image")
	}
}

func TestRunBytes(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, makeVStepNRGBA(6, 4, 3, 0, 200)); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	det := NewDetector(DefaultOptions())
	res, err := det.RunBytes(context.Background(), buf.Bytes(), []Algorithm{Sobel})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(res.EdgeMaps) != 1 || res.EdgeMaps[Sobel] == nil {
		t.Fatalf("expected a single sobel map, got %v", res.EdgeMaps)
	}

	var derr *DecodeError
	if _, err := det.RunBytes(context.Background(), []byte("not an image"), []Algorithm{Sobel}); !errors.As(err, &derr) {
		t.Fatalf("garbage bytes should be a DecodeError, got %v", err)
	}
}
