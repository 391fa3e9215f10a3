package cli

import (
	"context"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Fepozopo/tedge/pkg/edge"
)

// Run is the tedge entry point. It parses flags, runs the requested edge
// detectors over the input image and writes one PNG per algorithm. The
// return value is the process exit code.
func Run(args []string) int {
	cfg := LoadConfig()
	defCanny := edge.DefaultCannyConfig()

	fs := flag.NewFlagSet("tedge", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: tedge [flags] <image>\n\n")
		fmt.Fprintf(fs.Output(), "Detect edges in an image and write one PNG per algorithm.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	var (
		algorithm  = fs.String("algorithm", "all", "algorithm selection: all, sobel, prewitt or canny (comma-separated)")
		blur       = fs.Float64("blur", 0, "Gaussian pre-blur sigma in pixels (0 disables)")
		threshold  = fs.Float64("threshold", 0, "zero out Sobel/Prewitt magnitudes below this value (0-255)")
		binary     = fs.Bool("binary", false, "with -threshold, write a black/white map instead of graded magnitudes")
		cannyLow   = fs.Float64("canny-low", defCanny.LowThreshold, "Canny weak-edge threshold (0-255)")
		cannyHigh  = fs.Float64("canny-high", defCanny.HighThreshold, "Canny strong-edge threshold (0-255)")
		cannyAuto  = fs.Bool("canny-auto", false, "derive Canny thresholds from the magnitude distribution")
		percentile = fs.Float64("percentile", defCanny.HighPercentile, "high-threshold percentile for -canny-auto (0-1)")
		outDir     = fs.String("out", "", "output directory (default: alongside the input)")
		sheet      = fs.Bool("sheet", false, "also write a labeled side-by-side comparison sheet")
		labelColor = fs.String("label-color", "", "hex color for sheet labels, e.g. #00ff88 (default white)")
		preview    = fs.Bool("preview", false, "render the result inline in the terminal")
		quiet      = fs.Bool("quiet", false, "suppress progress output")
		version    = fs.Bool("version", false, "print the version and exit")
		update     = fs.Bool("update", false, "check GitHub for a newer release and self-update")
		list       = fs.Bool("list", false, "list the available algorithms and their parameters")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	switch {
	case *version:
		fmt.Printf("tedge %s\n", Version)
		return 0
	case *list:
		printAlgorithms(os.Stdout)
		return 0
	case *update:
		if err := CheckForUpdates(); err != nil {
			fmt.Fprintf(os.Stderr, "tedge: %v\n", err)
			return 1
		}
		return 0
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	input := fs.Arg(0)

	algorithms, err := edge.ParseSelection(*algorithm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tedge: %v\n", err)
		return 1
	}

	style := edge.LabelStyle{FontPath: cfg.FontPath}
	if *labelColor != "" {
		col, err := edge.ParseHexColor(*labelColor)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tedge: %v\n", err)
			return 1
		}
		style.Color = col
	}

	opts := edge.DefaultOptions()
	opts.BlurSigma = *blur
	opts.Magnitude = edge.MagnitudeOptions{Threshold: *threshold, Binary: *binary}
	opts.Canny = edge.CannyConfig{
		LowThreshold:   *cannyLow,
		HighThreshold:  *cannyHigh,
		AutoThreshold:  *cannyAuto,
		HighPercentile: *percentile,
	}
	opts.MaxDimension = cfg.MaxDimension

	data, err := os.ReadFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tedge: %v\n", err)
		return 1
	}

	ctx := context.Background()
	img, err := edge.Decode(ctx, data, edge.DecodeOptions{MaxDimension: cfg.MaxDimension})
	if err != nil {
		fmt.Fprintf(os.Stderr, "tedge: %v\n", err)
		return 1
	}
	if !*quiet {
		fmt.Println(ImageInfo(img))
	}

	det := edge.NewDetector(opts)
	result, err := det.Run(ctx, edge.DetectionRequest{Image: img, Algorithms: algorithms})
	if err != nil {
		fmt.Fprintf(os.Stderr, "tedge: %v\n", err)
		return 1
	}

	dir := *outDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	// Written outputs are removed if anything later fails, so a failed run
	// leaves no partial results behind.
	var written []string
	fail := func(err error) int {
		for _, p := range written {
			os.Remove(p)
		}
		fmt.Fprintf(os.Stderr, "tedge: %v\n", err)
		return 1
	}

	for _, a := range algorithms {
		em := result.EdgeMaps[a]
		if em == nil {
			return fail(fmt.Errorf("no result for %s", a))
		}
		out := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stem, a))
		if err := WriteImage(out, em.Image()); err != nil {
			return fail(err)
		}
		written = append(written, out)
		if !*quiet {
			fmt.Printf("wrote %s\n", out)
		}
	}

	var sheetImg *image.NRGBA
	if *sheet || *preview {
		sheetImg = edge.ComparisonSheet(result, algorithms, style)
	}
	if *sheet {
		if sheetImg == nil {
			return fail(fmt.Errorf("could not build comparison sheet"))
		}
		out := filepath.Join(dir, stem+"_sheet.png")
		if err := WriteImage(out, sheetImg); err != nil {
			return fail(err)
		}
		written = append(written, out)
		if !*quiet {
			fmt.Printf("wrote %s\n", out)
		}
	}

	if *preview {
		// Preview problems should not discard results already on disk.
		if err := PreviewImage(sheetImg, cfg.PreviewBackend); err != nil {
			fmt.Fprintf(os.Stderr, "tedge: preview unavailable: %v\n", err)
		}
	}
	return 0
}

// printAlgorithms writes the algorithm registry as help text.
func printAlgorithms(w io.Writer) {
	fmt.Fprintln(w, "Available algorithms:")
	for _, s := range edge.Specs {
		fmt.Fprintf(w, "\n%s\n  %s\n", s.Name, s.Description)
		for _, p := range s.Params {
			fmt.Fprintf(w, "    %-12s %-8s default %-8s %s\n", p.Name, p.Type, p.Default, p.Description)
		}
	}
}
