package edge

// EdgeMap is the product of a reducer: per-pixel edge strength in [0,255],
// indexed y*W+x. Magnitude reducers emit graded values, Canny emits only
// 0 and 255.
type EdgeMap struct {
	W, H int
	Pix  []float64
}

func (m *EdgeMap) At(x, y int) float64 {
	return m.Pix[y*m.W+x]
}

// MagnitudeOptions control the Sobel and Prewitt reducers. The zero value
// keeps every graded magnitude.
type MagnitudeOptions struct {
	// Threshold zeroes out normalized magnitudes below it. Values are on
	// the [0,255] scale of the output map; 0 disables thresholding.
	Threshold float64
	// Binary maps surviving pixels to 255 instead of their graded value.
	// It has no effect without a threshold.
	Binary bool
}

// ReduceMagnitude maps a gradient field to an edge map by scaling magnitude
// so the strongest response lands on 255. A flat field normalizes to an
// all-zero map.
func ReduceMagnitude(g *GradientField, opts MagnitudeOptions) (*EdgeMap, error) {
	if !g.valid() {
		return nil, processingErrorf("reduce", "invalid gradient field")
	}
	mag := g.Magnitude()
	norm := 1.0
	if g.MaxMagnitude() > 0 {
		norm = 255.0 / g.MaxMagnitude()
	}
	out := &EdgeMap{W: g.W, H: g.H, Pix: make([]float64, len(mag))}
	for i, m := range mag {
		v := m * norm
		if opts.Threshold > 0 {
			if opts.Binary {
				if v >= opts.Threshold {
					v = 255
				} else {
					v = 0
				}
			} else if v < opts.Threshold {
				v = 0
			}
		}
		out.Pix[i] = v
	}
	return out, nil
}
