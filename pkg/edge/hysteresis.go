package edge

// Pixel classes are tracked in bit masks, one bit per pixel, so large
// frames stay compact during the trace.

func newBitmask(n int) []byte { return make([]byte, (n+7)/8) }

func getBit(mask []byte, i int) bool { return mask[i>>3]&(1<<(uint(i)&7)) != 0 }

func setBit(mask []byte, i int) { mask[i>>3] |= 1 << (uint(i) & 7) }

// splitThresholds classifies each thinned magnitude: strong at or above
// high, weak at or above low. Exact zeroes were suppressed and are never
// candidates, whatever low is.
func splitThresholds(thin []float64, low, high float64) (strong, weak []byte) {
	strong = newBitmask(len(thin))
	weak = newBitmask(len(thin))
	for i, m := range thin {
		if m <= 0 {
			continue
		}
		if m >= high {
			setBit(strong, i)
		} else if m >= low {
			setBit(weak, i)
		}
	}
	return strong, weak
}

type seed struct{ x, y int }

// traceHysteresis promotes weak pixels 8-connected to a strong chain and
// returns the final edge mask. Weak pixels with no strong path are
// discarded.
func traceHysteresis(strong, weak []byte, w, h int) []byte {
	seeds := make([]seed, 0, 64)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if getBit(strong, y*w+x) {
				seeds = append(seeds, seed{x, y})
			}
		}
	}
	return traceFromSeeds(seeds, strong, weak, w, h)
}

// traceFromSeeds runs the stack walk from the given strong seeds. The
// result does not depend on seed order: every weak pixel with an
// 8-connected path to a strong pixel is promoted exactly once.
func traceFromSeeds(seeds []seed, strong, weak []byte, w, h int) []byte {
	edges := newBitmask(w * h)
	copy(edges, strong)
	stack := append([]seed(nil), seeds...)
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := s.x+dx, s.y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				idx := ny*w + nx
				if getBit(edges, idx) || !getBit(weak, idx) {
					continue
				}
				setBit(edges, idx)
				stack = append(stack, seed{nx, ny})
			}
		}
	}
	return edges
}
