package edge

import (
	"strings"
	"testing"
)

func TestParseSelection(t *testing.T) {
	got, err := ParseSelection("all")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(got) != 3 || got[0] != Sobel || got[1] != Prewitt || got[2] != Canny {
		t.Fatalf(`"all" should expand to the three algorithms in order, got %v`, got)
	}

	got, err = ParseSelection("SOBEL")
	if err != nil || len(got) != 1 || got[0] != Sobel {
		t.Fatalf("case-insensitive single selection failed: %v %v", got, err)
	}

	got, err = ParseSelection("canny, sobel")
	if err != nil || len(got) != 2 || got[0] != Canny || got[1] != Sobel {
		t.Fatalf("comma selection should keep mention order, got %v (%v)", got, err)
	}

	got, err = ParseSelection("sobel,sobel,all")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(got) != 3 || got[0] != Sobel {
		t.Fatalf("duplicates should collapse, got %v", got)
	}
}

func TestParseSelectionErrors(t *testing.T) {
	for _, bad := range []string{"", ",", "laplacian", "sobel,roberts"} {
		if _, err := ParseSelection(bad); err == nil {
			t.Fatalf("%q should not parse", bad)
		}
	}
	_, err := ParseSelection("laplacian")
	if !strings.Contains(err.Error(), "laplacian") {
		t.Fatalf("error should name the unknown algorithm, got %v", err)
	}
}

func TestSpecsCoverEveryAlgorithm(t *testing.T) {
	all := AllAlgorithms()
	if len(Specs) != len(all) {
		t.Fatalf("%d specs for %d algorithms", len(Specs), len(all))
	}
	for i, spec := range Specs {
		a, err := ParseAlgorithm(spec.Name)
		if err != nil {
			t.Fatalf("spec name %q does not parse: %v", spec.Name, err)
		}
		if a != all[i] {
			t.Fatalf("spec %d is %q, want %q", i, spec.Name, all[i])
		}
		if spec.Description == "" {
			t.Fatalf("spec %q has no description", spec.Name)
		}
	}
}

func TestKernelFamily(t *testing.T) {
	if kernelFamily(Canny) != Sobel {
		t.Fatalf("canny should share the sobel family")
	}
	if kernelFamily(Prewitt) != Prewitt {
		t.Fatalf("prewitt is its own family")
	}
	kx, ky, err := kernelsFor(Canny)
	if err != nil {
		t.Fatalf("kernelsFor failed: %v", err)
	}
	if kx != SobelX() || ky != SobelY() {
		t.Fatalf("canny should convolve with sobel kernels")
	}
}

func TestAlgorithmString(t *testing.T) {
	if Sobel.String() != "sobel" || Canny.String() != "canny" {
		t.Fatalf("unexpected names: %s %s", Sobel, Canny)
	}
	if !strings.Contains(Algorithm(42).String(), "42") {
		t.Fatalf("unknown algorithm should render its number")
	}
}
