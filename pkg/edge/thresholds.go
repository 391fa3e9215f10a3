package edge

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// deriveThresholds picks a Canny threshold pair from the distribution of
// the thinned magnitudes: high is the given quantile of the nonzero
// values, low is half of it. Returns (0,0) when nothing survived
// suppression.
func deriveThresholds(thin []float64, percentile float64) (low, high float64) {
	vals := make([]float64, 0, len(thin))
	for _, v := range thin {
		if v > 0 {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return 0, 0
	}
	sort.Float64s(vals)
	high = stat.Quantile(percentile, stat.Empirical, vals, nil)
	return high / 2, high
}
