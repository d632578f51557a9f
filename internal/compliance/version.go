package compliance

import (
	"strconv"
	"strings"
)

// Version is a parsed major.minor OS version pair. Patch components are
// deliberately ignored: policy thresholds are expressed as major.minor.
type Version struct {
	Major int
	Minor int
}

// ParseVersion extracts the numeric major.minor pair from a dotted version
// string. The boolean is false when the string has no numeric major
// component; callers treat that as "unparseable" instead of failing.
func ParseVersion(s string) (Version, bool) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, false
	}
	v := Version{Major: major}
	if len(parts) > 1 {
		minor, err := strconv.Atoi(parts[1])
		if err != nil {
			return Version{}, false
		}
		v.Minor = minor
	}
	return v, true
}

// AtLeast reports whether v >= min, comparing major first and minor second
// as numbers, so "14.10" sorts above "14.9".
func (v Version) AtLeast(min Version) bool {
	if v.Major != min.Major {
		return v.Major > min.Major
	}
	return v.Minor >= min.Minor
}
