package edge

import (
	"math"
	"sync"
)

// GradientField holds the two directional responses of a kernel pair,
// indexed y*W+x. Magnitude is derived lazily and cached because only some
// consumers need it.
type GradientField struct {
	W, H int
	Gx   []float64
	Gy   []float64

	magOnce sync.Once
	mag     []float64
	maxMag  float64
}

// Magnitude returns sqrt(Gx^2+Gy^2) per pixel. The slice is computed once
// and shared; callers must not modify it.
func (g *GradientField) Magnitude() []float64 {
	g.magOnce.Do(func() {
		g.mag = make([]float64, len(g.Gx))
		for i := range g.Gx {
			m := math.Hypot(g.Gx[i], g.Gy[i])
			g.mag[i] = m
			if m > g.maxMag {
				g.maxMag = m
			}
		}
	})
	return g.mag
}

// MaxMagnitude returns the largest magnitude in the field, 0 for a flat
// field.
func (g *GradientField) MaxMagnitude() float64 {
	g.Magnitude()
	return g.maxMag
}

// DirectionAt returns the gradient angle at (x,y) in radians, from
// math.Atan2(Gy, Gx). A zero gradient reports angle 0.
func (g *GradientField) DirectionAt(x, y int) float64 {
	idx := y*g.W + x
	return math.Atan2(g.Gy[idx], g.Gx[idx])
}

func (g *GradientField) valid() bool {
	return g != nil && g.W > 0 && g.H > 0 &&
		len(g.Gx) == g.W*g.H && len(g.Gy) == g.W*g.H
}
