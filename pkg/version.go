package gitsemver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Level names the component of a SemanticVersion that a bump increments.
type Level string

const (
	Major Level = "major"
	Minor Level = "minor"
	Patch Level = "patch"
)

// Levels lists the bump levels from the highest-order component down.
var Levels = []Level{Major, Minor, Patch}

// ParseLevel converts a bump keyword into a Level.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case Major, Minor, Patch:
		return Level(s), nil
	default:
		return "", fmt.Errorf("unknown bump level: %s", s)
	}
}

// SemanticVersion is the numeric (major, minor, patch) core of a version.
// Components are kept as decimal digit strings without leading zeros, so
// there is no upper bound on their size. Prerelease and build metadata are
// not tracked. Build values with NewVersion, ParseVersion or ParseTag.
type SemanticVersion struct {
	Major string
	Minor string
	Patch string
}

var (
	// tagVersionPattern finds a version core anywhere inside a tag name.
	tagVersionPattern = regexp.MustCompile(`(\d+)\.(\d+)\.(\d+)`)
	// initialPattern is the exact form accepted for the initial offset.
	initialPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)
)

// NewVersion returns the version major.minor.patch.
func NewVersion(major, minor, patch uint64) SemanticVersion {
	return SemanticVersion{
		Major: strconv.FormatUint(major, 10),
		Minor: strconv.FormatUint(minor, 10),
		Patch: strconv.FormatUint(patch, 10),
	}
}

// String formats the version as "X.Y.Z" (no "v" prefix).
func (v SemanticVersion) String() string {
	return component(v.Major) + "." + component(v.Minor) + "." + component(v.Patch)
}

// canonical returns the "vX.Y.Z" form understood by x/mod/semver.
func (v SemanticVersion) canonical() string {
	return "v" + v.String()
}

// Compare returns -1, 0 or +1 depending on whether v sorts before, equal to,
// or after w. Ordering is lexicographic on (major, minor, patch), each
// component compared numerically.
func (v SemanticVersion) Compare(w SemanticVersion) int {
	return semver.Compare(v.canonical(), w.canonical())
}

// Bump returns the next version at the given level. Lower-order components
// reset to zero; higher-order components are left alone.
func (v SemanticVersion) Bump(level Level) (SemanticVersion, error) {
	major, minor, patch := component(v.Major), component(v.Minor), component(v.Patch)
	switch level {
	case Major:
		return SemanticVersion{Major: increment(major), Minor: "0", Patch: "0"}, nil
	case Minor:
		return SemanticVersion{Major: major, Minor: increment(minor), Patch: "0"}, nil
	case Patch:
		return SemanticVersion{Major: major, Minor: minor, Patch: increment(patch)}, nil
	default:
		return v, fmt.Errorf("unknown bump level: %s", level)
	}
}

// ParseVersion parses a string of exactly three dot-separated non-negative
// integers, such as the configured initial offset.
func ParseVersion(s string) (SemanticVersion, error) {
	m := initialPattern.FindStringSubmatch(s)
	if m == nil {
		return SemanticVersion{}, fmt.Errorf("%w: %q doesn't look like a three-level integer", ErrInvalidInitialVersion, s)
	}
	return versionFromGroups(m[1:]), nil
}

func versionFromGroups(groups []string) SemanticVersion {
	return SemanticVersion{
		Major: trimZeros(groups[0]),
		Minor: trimZeros(groups[1]),
		Patch: trimZeros(groups[2]),
	}
}

// trimZeros drops leading zeros so "007" and "7" name the same number.
func trimZeros(digits string) string {
	if t := strings.TrimLeft(digits, "0"); t != "" {
		return t
	}
	return "0"
}

func component(digits string) string {
	if digits == "" {
		return "0"
	}
	return digits
}

// increment adds one to a decimal digit string.
func increment(digits string) string {
	b := []byte(digits)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < '9' {
			b[i]++
			return string(b)
		}
		b[i] = '0'
	}
	return "1" + string(b)
}

// TagRecord is a raw tag name together with the version found in it.
// OK is false for tags that carry no version core; those never take part
// in version selection.
type TagRecord struct {
	Name    string
	Version SemanticVersion
	OK      bool
}

// ParseTag extracts the first "digits.digits.digits" run from a tag name,
// scanning left to right. "ver1.2.1", "v0.0.1" and "version2.1.1-freetext"
// all match; "version3.11-freetext" does not.
func ParseTag(name string) TagRecord {
	rec := TagRecord{Name: name}
	m := tagVersionPattern.FindStringSubmatch(name)
	if m == nil {
		return rec
	}
	rec.Version = versionFromGroups(m[1:])
	rec.OK = true
	return rec
}
