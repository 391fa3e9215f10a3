package edge

import "math"

// CannyConfig controls the double-threshold stage. Thresholds read on the
// [0,255] scale the thinned magnitudes are normalized to, so the same pair
// behaves the same across images of different contrast.
type CannyConfig struct {
	LowThreshold  float64
	HighThreshold float64
	// AutoThreshold ignores the fixed pair and derives HighThreshold as
	// the HighPercentile quantile of the surviving magnitudes, with
	// LowThreshold at half of it.
	AutoThreshold  bool
	HighPercentile float64
}

// DefaultCannyConfig returns the fixed pair 50/100 with a 0.90 percentile
// should auto derivation be switched on.
func DefaultCannyConfig() CannyConfig {
	return CannyConfig{
		LowThreshold:   50,
		HighThreshold:  100,
		HighPercentile: 0.90,
	}
}

func (c CannyConfig) normalized() CannyConfig {
	if c.HighPercentile == 0 {
		c.HighPercentile = 0.90
	}
	return c
}

func (c CannyConfig) validate() error {
	if c.AutoThreshold {
		if c.HighPercentile <= 0 || c.HighPercentile >= 1 {
			return configErrorf("canny high percentile %.3g outside (0,1)", c.HighPercentile)
		}
		return nil
	}
	if c.HighThreshold <= c.LowThreshold {
		return configErrorf("canny high threshold %.6g must exceed low threshold %.6g",
			c.HighThreshold, c.LowThreshold)
	}
	return nil
}

// ReduceCanny runs the Canny chain on the field: non-maximum suppression,
// double thresholding, hysteresis tracking. The output map is binary, 255
// for edge pixels and 0 elsewhere.
func ReduceCanny(g *GradientField, cfg CannyConfig) (*EdgeMap, error) {
	if !g.valid() {
		return nil, processingErrorf("canny", "invalid gradient field")
	}
	cfg = cfg.normalized()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	thin, err := SuppressNonMaxima(g, nil)
	if err != nil {
		return nil, err
	}

	// thresholds read on [0,255], so scale the thinned magnitudes by the
	// field maximum first
	if g.MaxMagnitude() > 0 {
		scale := 255.0 / g.MaxMagnitude()
		for i := range thin {
			thin[i] *= scale
		}
	}

	low, high := cfg.LowThreshold, cfg.HighThreshold
	if cfg.AutoThreshold {
		low, high = deriveThresholds(thin, cfg.HighPercentile)
		if high <= 0 {
			// nothing survived suppression, the map is empty
			return &EdgeMap{W: g.W, H: g.H, Pix: make([]float64, g.W*g.H)}, nil
		}
	}

	strong, weak := splitThresholds(thin, low, high)
	edges := traceHysteresis(strong, weak, g.W, g.H)

	out := &EdgeMap{W: g.W, H: g.H, Pix: make([]float64, g.W*g.H)}
	for i := range out.Pix {
		if getBit(edges, i) {
			out.Pix[i] = 255
		}
	}
	return out, nil
}

// SuppressNonMaxima thins the field to pixels that are local maxima along
// their gradient direction. mag supplies the magnitudes to compare (nil
// means the field's own); directions always come from the field, so the
// pass can be re-applied to its own output. Comparisons are inclusive, a
// tie keeps both pixels. Neighbors beyond the border clamp to the border
// pixel.
func SuppressNonMaxima(g *GradientField, mag []float64) ([]float64, error) {
	if !g.valid() {
		return nil, processingErrorf("canny", "invalid gradient field")
	}
	if mag == nil {
		mag = g.Magnitude()
	}
	if len(mag) != g.W*g.H {
		return nil, processingErrorf("canny", "magnitude plane length %d does not match %dx%d field",
			len(mag), g.W, g.H)
	}
	w, h := g.W, g.H
	out := make([]float64, len(mag))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			m := mag[idx]
			if m == 0 {
				continue
			}
			dx, dy := neighborOffsets(g.Gx[idx], g.Gy[idx])
			q := mag[clampInt(y+dy, 0, h-1)*w+clampInt(x+dx, 0, w-1)]
			r := mag[clampInt(y-dy, 0, h-1)*w+clampInt(x-dx, 0, w-1)]
			if m >= q && m >= r {
				out[idx] = m
			}
		}
	}
	return out, nil
}

// neighborOffsets quantizes the gradient angle into one of four directions
// and returns the offset of the along-gradient neighbor; the opposite
// neighbor is its negation. Coordinates are array order, y growing down.
func neighborOffsets(gx, gy float64) (int, int) {
	angle := math.Atan2(gy, gx) * 180 / math.Pi
	if angle < 0 {
		angle += 180
	}
	switch {
	case angle < 22.5 || angle >= 157.5:
		return 1, 0
	case angle < 67.5:
		return 1, 1
	case angle < 112.5:
		return 0, 1
	default:
		return -1, 1
	}
}
