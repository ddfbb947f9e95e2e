// Package semver implements loose semantic version parsing and ordering
// for documentation version strings.
//
// Published documentation versions are frequently not strict semver:
// "1.2" omits the patch component, "1.19-SNAPSHOT" and "1.20.2-pre1"
// carry non-standard suffixes. Parsing is therefore loose: it never
// fails, missing components default to zero, and anything after the
// numeric prefix is kept as an opaque pre-release tag.
package semver

import (
	"strconv"
	"strings"
)

// Version is a loosely parsed version. Pre holds the raw pre-release
// tag with any leading dash stripped, or "" when absent.
type Version struct {
	Major int
	Minor int
	Patch int
	Pre   string
}

// Parse parses s in loose mode. It never fails: the leading dotted
// numeric prefix becomes (major, minor, patch) with missing components
// defaulting to zero, and the remainder becomes the pre-release tag.
func Parse(s string) Version {
	var v Version
	s = strings.TrimSpace(s)

	numeric := s
	if i := strings.IndexFunc(s, isNotVersionDigit); i >= 0 {
		numeric = s[:i]
		v.Pre = strings.TrimPrefix(s[i:], "-")
	}

	nums := make([]int, 0, 3)
	for _, part := range strings.Split(numeric, ".") {
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			break
		}
		nums = append(nums, n)
		if len(nums) == 3 {
			break
		}
	}
	for len(nums) < 3 {
		nums = append(nums, 0)
	}
	v.Major, v.Minor, v.Patch = nums[0], nums[1], nums[2]
	return v
}

func isNotVersionDigit(r rune) bool {
	return (r < '0' || r > '9') && r != '.'
}

// Compare orders two versions: negative when a < b, zero when equal,
// positive when a > b. Major, minor, and patch are compared
// numerically. At equal numbers a release outranks a pre-release;
// two pre-release tags are opaque and compare equal.
func Compare(a, b Version) int {
	if a.Major != b.Major {
		return a.Major - b.Major
	}
	if a.Minor != b.Minor {
		return a.Minor - b.Minor
	}
	if a.Patch != b.Patch {
		return a.Patch - b.Patch
	}
	switch {
	case a.Pre == "" && b.Pre != "":
		return 1
	case a.Pre != "" && b.Pre == "":
		return -1
	}
	return 0
}

// GreaterThan reports whether v strictly outranks o.
func (v Version) GreaterThan(o Version) bool {
	return Compare(v, o) > 0
}

// SameMinorLine reports whether a and b belong to the same minor
// release line, i.e. their (major, minor) tuples are equal. This is
// the test that assigns a requested version to a version group.
func SameMinorLine(a, b Version) bool {
	return a.Major == b.Major && a.Minor == b.Minor
}
