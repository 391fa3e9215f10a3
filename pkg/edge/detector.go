package edge

import (
	"context"
	"sync"
)

// DetectionRequest pairs a decoded image with the algorithms to run on it.
// The selection has set semantics: duplicates collapse onto one result key.
type DetectionRequest struct {
	Image      *RasterImage
	Algorithms []Algorithm
}

// DetectionResult holds one edge map per requested algorithm. Keys match
// the deduplicated selection exactly, nothing more.
type DetectionResult struct {
	EdgeMaps map[Algorithm]*EdgeMap
}

// Options configure a Detector. The zero value means Rec601 luminance, no
// pre-blur, graded magnitude output, and the default Canny pair.
type Options struct {
	Weights LuminanceWeights
	// BlurSigma smooths the intensity plane before gradients when > 0.
	// The same smoothed plane feeds every reducer.
	BlurSigma float64
	Magnitude MagnitudeOptions
	Canny     CannyConfig
	// MaxDimension caps decoded width and height in RunBytes; 0 means
	// DefaultMaxDimension.
	MaxDimension int
	// KeepOrientation skips the EXIF orientation fix when RunBytes
	// decodes JPEG data.
	KeepOrientation bool
}

// DefaultOptions returns the settings the CLI starts from.
func DefaultOptions() Options {
	return Options{
		Weights:      Rec601,
		Canny:        DefaultCannyConfig(),
		MaxDimension: DefaultMaxDimension,
	}
}

// Detector runs the detection pipeline. It memoizes the shared stages
// (intensity plane, gradient fields) for the most recent image, so
// changing the algorithm selection on the same RasterImage does not pay
// for them twice. A Detector is safe for concurrent use.
type Detector struct {
	opts Options

	mu     sync.Mutex
	cached *imageState
}

// imageState carries the per-image intermediates shared across reducers.
type imageState struct {
	img       *RasterImage
	intensity *IntensityBuffer

	mu     sync.Mutex
	fields map[Algorithm]*GradientField
}

func NewDetector(opts Options) *Detector {
	opts.Weights = opts.Weights.orDefault()
	if opts.Canny == (CannyConfig{}) {
		opts.Canny = DefaultCannyConfig()
	}
	if opts.MaxDimension == 0 {
		opts.MaxDimension = DefaultMaxDimension
	}
	return &Detector{opts: opts}
}

// Run executes every reducer in the request against its image. The shared
// stages run once per image; Canny reads the Sobel gradient field rather
// than convolving again. On any failure the whole request fails with no
// partial result. The context is consulted between stages only, a request
// cancelled after decode simply stops before the next reducer.
func (d *Detector) Run(ctx context.Context, req DetectionRequest) (*DetectionResult, error) {
	if req.Image == nil {
		return nil, processingErrorf("detect", "nil image")
	}
	if len(req.Algorithms) == 0 {
		return nil, configErrorf("empty algorithm selection")
	}
	algs := dedupeAlgorithms(req.Algorithms)
	for _, a := range algs {
		if _, ok := algorithmNames[a]; !ok {
			return nil, configErrorf("unknown algorithm %d", int(a))
		}
		if a == Canny {
			if err := d.opts.Canny.normalized().validate(); err != nil {
				return nil, err
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	st, err := d.state(req.Image)
	if err != nil {
		return nil, err
	}

	maps := make(map[Algorithm]*EdgeMap, len(algs))
	for _, a := range algs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g, err := st.field(a)
		if err != nil {
			return nil, err
		}
		var em *EdgeMap
		switch a {
		case Canny:
			em, err = ReduceCanny(g, d.opts.Canny)
		default:
			em, err = ReduceMagnitude(g, d.opts.Magnitude)
		}
		if err != nil {
			return nil, err
		}
		maps[a] = em
	}
	return &DetectionResult{EdgeMaps: maps}, nil
}

// RunBytes decodes data and runs the selection on the result. Decoding is
// the only stage that observes cancellation mid-flight.
func (d *Detector) RunBytes(ctx context.Context, data []byte, algorithms []Algorithm) (*DetectionResult, error) {
	img, err := Decode(ctx, data, DecodeOptions{
		MaxDimension:    d.opts.MaxDimension,
		KeepOrientation: d.opts.KeepOrientation,
	})
	if err != nil {
		return nil, err
	}
	return d.Run(ctx, DetectionRequest{Image: img, Algorithms: algorithms})
}

// state returns the shared intermediates for img, reusing the cached set
// when the same image comes back. Concurrent misses may duplicate work but
// never corrupt the cache.
func (d *Detector) state(img *RasterImage) (*imageState, error) {
	d.mu.Lock()
	st := d.cached
	d.mu.Unlock()
	if st != nil && st.img == img {
		return st, nil
	}

	intensity := img.Intensity(d.opts.Weights)
	if d.opts.BlurSigma > 0 {
		var err error
		intensity, err = GaussianBlur(intensity, d.opts.BlurSigma)
		if err != nil {
			return nil, err
		}
	}
	st = &imageState{
		img:       img,
		intensity: intensity,
		fields:    make(map[Algorithm]*GradientField, 2),
	}
	d.mu.Lock()
	d.cached = st
	d.mu.Unlock()
	return st, nil
}

// field returns the gradient field for a's kernel family, convolving at
// most once per family.
func (st *imageState) field(a Algorithm) (*GradientField, error) {
	fam := kernelFamily(a)
	st.mu.Lock()
	g := st.fields[fam]
	st.mu.Unlock()
	if g != nil {
		return g, nil
	}

	kx, ky, err := kernelsFor(fam)
	if err != nil {
		return nil, err
	}
	g, err = Convolve(st.intensity, kx, ky)
	if err != nil {
		return nil, err
	}
	st.mu.Lock()
	if prev := st.fields[fam]; prev != nil {
		g = prev
	} else {
		st.fields[fam] = g
	}
	st.mu.Unlock()
	return g, nil
}

func dedupeAlgorithms(algs []Algorithm) []Algorithm {
	seen := make(map[Algorithm]bool, len(algs))
	out := make([]Algorithm, 0, len(algs))
	for _, a := range algs {
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}
