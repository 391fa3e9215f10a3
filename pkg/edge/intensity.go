package edge

// LuminanceWeights are the per-channel factors used to reduce RGB to a
// single intensity. Weights are applied as given and are expected to sum
// to roughly 1.
type LuminanceWeights struct {
	R, G, B float64
}

var (
	// Rec601 is the default reduction (0.299 R + 0.587 G + 0.114 B).
	Rec601 = LuminanceWeights{R: 0.299, G: 0.587, B: 0.114}
	// Rec709 matches modern video primaries.
	Rec709 = LuminanceWeights{R: 0.2126, G: 0.7152, B: 0.0722}
)

// orDefault substitutes Rec601 for the zero value so callers can leave the
// field unset.
func (w LuminanceWeights) orDefault() LuminanceWeights {
	if w.R == 0 && w.G == 0 && w.B == 0 {
		return Rec601
	}
	return w
}

// IntensityBuffer is a single-channel float plane in [0,255], indexed
// y*W+x. It is the input format for convolution and blurring.
type IntensityBuffer struct {
	W, H int
	Pix  []float64
}

// Intensity reduces the raster to a luminance plane using the given
// weights. Alpha is ignored.
func (r *RasterImage) Intensity(weights LuminanceWeights) *IntensityBuffer {
	weights = weights.orDefault()
	w, h := r.width, r.height
	out := &IntensityBuffer{W: w, H: h, Pix: make([]float64, w*h)}
	pix := r.pix.Pix
	idx := 0
	for y := 0; y < h; y++ {
		row := r.pix.PixOffset(0, y)
		for x := 0; x < w; x++ {
			o := row + x*4
			out.Pix[idx] = weights.R*float64(pix[o+0]) +
				weights.G*float64(pix[o+1]) +
				weights.B*float64(pix[o+2])
			idx++
		}
	}
	return out
}

func (b *IntensityBuffer) At(x, y int) float64 {
	return b.Pix[y*b.W+x]
}

// atClamped samples with coordinates clamped to the plane, which is the
// border policy used by every kernel pass in this package.
func (b *IntensityBuffer) atClamped(x, y int) float64 {
	x = clampInt(x, 0, b.W-1)
	y = clampInt(y, 0, b.H-1)
	return b.Pix[y*b.W+x]
}

func (b *IntensityBuffer) valid() bool {
	return b != nil && b.W > 0 && b.H > 0 && len(b.Pix) == b.W*b.H
}
