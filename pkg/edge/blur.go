package edge

import (
	"math"
	"runtime"
	"sync"
)

// gaussianKernel1D builds a normalized 1D Gaussian with radius ceil(3*sigma).
func gaussianKernel1D(sigma float64) ([]float64, int) {
	if sigma <= 0 {
		return []float64{1.0}, 0
	}
	radius := int(math.Ceil(3 * sigma))
	kern := make([]float64, radius*2+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-0.5 * (float64(i) * float64(i)) / (sigma * sigma))
		kern[i+radius] = v
		sum += v
	}
	for i := range kern {
		kern[i] /= sum
	}
	return kern, radius
}

// GaussianBlur smooths the plane with a separable Gaussian (horizontal then
// vertical pass) and returns a new plane. sigma <= 0 returns an untouched
// copy. Borders are clamped like every other kernel pass here.
func GaussianBlur(in *IntensityBuffer, sigma float64) (*IntensityBuffer, error) {
	if !in.valid() {
		return nil, processingErrorf("blur", "invalid intensity plane")
	}
	w, h := in.W, in.H
	kern, radius := gaussianKernel1D(sigma)
	tmp := &IntensityBuffer{W: w, H: h, Pix: make([]float64, w*h)}
	out := &IntensityBuffer{W: w, H: h, Pix: make([]float64, w*h)}

	var wg sync.WaitGroup

	// horizontal pass
	workers := runtime.NumCPU()
	if workers > h {
		workers = h
	}
	rowsPer := (h + workers - 1) / workers
	for wi := 0; wi < workers; wi++ {
		y0 := wi * rowsPer
		y1 := y0 + rowsPer
		if y1 > h {
			y1 = h
		}
		if y0 >= y1 {
			continue
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			for y := y0; y < y1; y++ {
				for x := 0; x < w; x++ {
					sum := 0.0
					for k := -radius; k <= radius; k++ {
						sum += in.atClamped(x+k, y) * kern[k+radius]
					}
					tmp.Pix[y*w+x] = sum
				}
			}
		}(y0, y1)
	}
	wg.Wait()

	// vertical pass
	workers = runtime.NumCPU()
	if workers > w {
		workers = w
	}
	colsPer := (w + workers - 1) / workers
	for wi := 0; wi < workers; wi++ {
		x0 := wi * colsPer
		x1 := x0 + colsPer
		if x1 > w {
			x1 = w
		}
		if x0 >= x1 {
			continue
		}
		wg.Add(1)
		go func(x0, x1 int) {
			defer wg.Done()
			for x := x0; x < x1; x++ {
				for y := 0; y < h; y++ {
					sum := 0.0
					for k := -radius; k <= radius; k++ {
						sum += tmp.atClamped(x, y+k) * kern[k+radius]
					}
					out.Pix[y*w+x] = sum
				}
			}
		}(x0, x1)
	}
	wg.Wait()
	return out, nil
}
