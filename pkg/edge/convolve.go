package edge

import (
	"runtime"
	"sync"
)

// Convolve slides both kernels over the plane in a single pass and returns
// the per-pixel responses as a GradientField. Samples that fall outside the
// plane are clamped to the nearest border pixel, so border responses come
// from replicated edge rows and columns rather than an implicit black
// frame.
func Convolve(in *IntensityBuffer, kx, ky Kernel) (*GradientField, error) {
	if !in.valid() {
		return nil, processingErrorf("convolve", "invalid intensity plane")
	}
	w, h := in.W, in.H
	out := &GradientField{
		W:  w,
		H:  h,
		Gx: make([]float64, w*h),
		Gy: make([]float64, w*h),
	}

	workers := runtime.NumCPU()
	if workers > h {
		workers = h
	}
	rowsPer := (h + workers - 1) / workers
	var wg sync.WaitGroup
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
					sumX := 0.0
					sumY := 0.0
					for dy := -1; dy <= 1; dy++ {
						for dx := -1; dx <= 1; dx++ {
							v := in.atClamped(x+dx, y+dy)
							sumX += v * kx[dy+1][dx+1]
							sumY += v * ky[dy+1][dx+1]
						}
					}
					idx := y*w + x
					out.Gx[idx] = sumX
					out.Gy[idx] = sumY
				}
			}
		}(y0, y1)
	}
	wg.Wait()
	return out, nil
}
