package edge

import (
	"fmt"
	"strings"
)

// Algorithm selects a reducer.
type Algorithm int

const (
	Sobel Algorithm = iota
	Prewitt
	Canny
)

var algorithmNames = map[Algorithm]string{
	Sobel:   "sobel",
	Prewitt: "prewitt",
	Canny:   "canny",
}

func (a Algorithm) String() string {
	if n, ok := algorithmNames[a]; ok {
		return n
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

// AllAlgorithms lists every reducer in canonical output order.
func AllAlgorithms() []Algorithm {
	return []Algorithm{Sobel, Prewitt, Canny}
}

// ParseAlgorithm maps a name to its Algorithm, case-insensitive.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sobel":
		return Sobel, nil
	case "prewitt":
		return Prewitt, nil
	case "canny":
		return Canny, nil
	}
	return 0, configErrorf("unknown algorithm %q", strings.TrimSpace(s))
}

// ParseSelection parses a comma-separated algorithm list. The name "all"
// expands to every algorithm, duplicates collapse, and order follows the
// first mention. An empty selection is a ConfigError.
func ParseSelection(s string) ([]Algorithm, error) {
	seen := make(map[Algorithm]bool, 3)
	out := make([]Algorithm, 0, 3)
	add := func(a Algorithm) {
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.EqualFold(part, "all") {
			for _, a := range AllAlgorithms() {
				add(a)
			}
			continue
		}
		a, err := ParseAlgorithm(part)
		if err != nil {
			return nil, err
		}
		add(a)
	}
	if len(out) == 0 {
		return nil, configErrorf("empty algorithm selection")
	}
	return out, nil
}

// kernelsFor returns the kernel pair an algorithm's gradients come from.
// Canny reads Sobel gradients by convention.
func kernelsFor(a Algorithm) (Kernel, Kernel, error) {
	switch a {
	case Sobel, Canny:
		return SobelX(), SobelY(), nil
	case Prewitt:
		return PrewittX(), PrewittY(), nil
	}
	return Kernel{}, Kernel{}, configErrorf("unknown algorithm %d", int(a))
}

// kernelFamily collapses algorithms that share a gradient field onto one
// cache key.
func kernelFamily(a Algorithm) Algorithm {
	if a == Canny {
		return Sobel
	}
	return a
}

// ParamSpec describes one tunable of an algorithm for listings and help
// output.
type ParamSpec struct {
	Name        string
	Type        string
	Default     string
	Description string
}

// AlgorithmSpec describes one reducer for listings and help output.
type AlgorithmSpec struct {
	Name        string
	Description string
	Params      []ParamSpec
}

// Specs describes every algorithm this package implements, in canonical
// order.
var Specs = []AlgorithmSpec{
	{
		Name:        "sobel",
		Description: "Gradient magnitude with Sobel kernels, normalized to grayscale.",
		Params: []ParamSpec{
			{Name: "threshold", Type: "float", Default: "0", Description: "zero out normalized magnitudes below this value (0 disables)"},
			{Name: "binary", Type: "bool", Default: "false", Description: "emit 255/0 instead of graded magnitudes"},
		},
	},
	{
		Name:        "prewitt",
		Description: "Gradient magnitude with Prewitt kernels, normalized to grayscale.",
		Params: []ParamSpec{
			{Name: "threshold", Type: "float", Default: "0", Description: "zero out normalized magnitudes below this value (0 disables)"},
			{Name: "binary", Type: "bool", Default: "false", Description: "emit 255/0 instead of graded magnitudes"},
		},
	},
	{
		Name:        "canny",
		Description: "Thin binary edges via non-maximum suppression followed by double-threshold hysteresis.",
		Params: []ParamSpec{
			{Name: "low", Type: "float", Default: "50", Description: "weak-edge threshold on the [0,255] magnitude scale"},
			{Name: "high", Type: "float", Default: "100", Description: "strong-edge threshold, must exceed low"},
			{Name: "auto", Type: "bool", Default: "false", Description: "derive the pair from the magnitude distribution instead"},
			{Name: "percentile", Type: "float", Default: "0.90", Description: "quantile used for the high threshold when auto is on"},
		},
	},
}
