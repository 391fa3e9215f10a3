// Package semver implements parsing and precedence ordering for semantic
// versions as used in release tags.
package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Version is a semantic version: core triple plus optional pre-release
// identifiers and build metadata.
type Version struct {
	Major int
	Minor int
	Patch int
	Pre   []string
	Build string
}

var (
	parseRe = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)(?:-([0-9A-Za-z.-]+))?(?:\+([0-9A-Za-z.-]+))?$`)
	findRe  = regexp.MustCompile(`v?\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?`)
)

// Parse parses a semantic version string. A leading "v" is accepted and
// ignored.
func Parse(s string) (Version, error) {
	m := parseRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Version{}, fmt.Errorf("invalid semver %q", s)
	}
	maj, err := strconv.Atoi(m[1])
	if err != nil {
		return Version{}, fmt.Errorf("invalid major version in %q", s)
	}
	min, err := strconv.Atoi(m[2])
	if err != nil {
		return Version{}, fmt.Errorf("invalid minor version in %q", s)
	}
	pat, err := strconv.Atoi(m[3])
	if err != nil {
		return Version{}, fmt.Errorf("invalid patch version in %q", s)
	}
	v := Version{Major: maj, Minor: min, Patch: pat, Build: m[5]}
	if m[4] != "" {
		v.Pre = strings.Split(m[4], ".")
		for _, id := range v.Pre {
			if id == "" {
				return Version{}, fmt.Errorf("empty pre-release identifier in %q", s)
			}
		}
	}
	return v, nil
}

// MustParse is Parse for known-good literals; it panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Find scans s for an embedded semantic version, such as "release-1.2.3"
// or "tedge v0.4.0 (stable)", and parses the first one found.
func Find(s string) (Version, bool) {
	m := findRe.FindString(s)
	if m == "" {
		return Version{}, false
	}
	v, err := Parse(m)
	if err != nil {
		return Version{}, false
	}
	return v, true
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if len(v.Pre) > 0 {
		s += "-" + strings.Join(v.Pre, ".")
	}
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}

// IsPrerelease reports whether v carries pre-release identifiers.
func (v Version) IsPrerelease() bool {
	return len(v.Pre) > 0
}

// Compare returns -1, 0 or 1 if v sorts below, equal to or above o under
// semver precedence. Build metadata is ignored.
func (v Version) Compare(o Version) int {
	if c := compareInt(v.Major, o.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, o.Minor); c != 0 {
		return c
	}
	if c := compareInt(v.Patch, o.Patch); c != 0 {
		return c
	}
	// A release outranks any pre-release of the same core triple.
	switch {
	case len(v.Pre) == 0 && len(o.Pre) == 0:
		return 0
	case len(v.Pre) == 0:
		return 1
	case len(o.Pre) == 0:
		return -1
	}
	return comparePre(v.Pre, o.Pre)
}

func (v Version) GT(o Version) bool     { return v.Compare(o) > 0 }
func (v Version) GTE(o Version) bool    { return v.Compare(o) >= 0 }
func (v Version) LT(o Version) bool     { return v.Compare(o) < 0 }
func (v Version) LTE(o Version) bool    { return v.Compare(o) <= 0 }
func (v Version) Equals(o Version) bool { return v.Compare(o) == 0 }

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// comparePre orders pre-release identifier lists: numeric identifiers
// compare numerically and sort below alphanumeric ones, alphanumeric
// identifiers compare as ASCII strings, and a shorter list that is a
// prefix of a longer one sorts first.
func comparePre(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		an, aNum := atoi(a[i])
		bn, bNum := atoi(b[i])
		switch {
		case aNum && bNum:
			if c := compareInt(an, bn); c != 0 {
				return c
			}
		case aNum:
			return -1
		case bNum:
			return 1
		default:
			if c := strings.Compare(a[i], b[i]); c != 0 {
				return c
			}
		}
	}
	return compareInt(len(a), len(b))
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}
