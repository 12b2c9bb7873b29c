package mdspec

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// SupportedMdbookVersion is the mdBook release the book model tracks.
// Compatible versions follow caret semantics: >=0.4.40, <0.5.0.
const SupportedMdbookVersion = "0.4.40"

// CheckVersion reports whether running is compatible with SupportedMdbookVersion.
// Returns an error wrapping ErrInvalidVersion if running cannot be parsed, and
// one wrapping ErrVersionMismatch if it is outside the compatible range.
// Pre-releases never match, as the requirement names a release.
func CheckVersion(running string) error {
	v := canonicalVersion(running)
	if v == "" {
		return fmt.Errorf("%w: %q", ErrInvalidVersion, running)
	}

	req := "v" + SupportedMdbookVersion
	upper := caretUpperBound(req)

	if semver.Prerelease(v) != "" ||
		semver.Compare(v, req) < 0 ||
		semver.Compare(v, upper) >= 0 {
		return fmt.Errorf("%w: mdspec targets mdBook %s, called from %s",
			ErrVersionMismatch, SupportedMdbookVersion, strings.TrimSpace(running))
	}
	return nil
}

// canonicalVersion returns the "vMAJOR.MINOR.PATCH[-pre]" form of a full
// three-part version, or "" if s is not one.
func canonicalVersion(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	if !semver.IsValid(s) {
		return ""
	}

	// semver accepts "v1" and "v1.2" shorthands; mdBook always sends three parts.
	core := strings.TrimPrefix(s, "v")
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	if strings.Count(core, ".") != 2 {
		return ""
	}
	return semver.Canonical(s)
}

// caretUpperBound returns the exclusive upper bound of ^v: the next major
// release, or the next minor (patch) one while the major (and minor) is zero.
func caretUpperBound(v string) string {
	parts := strings.SplitN(strings.TrimPrefix(semver.Canonical(v), "v"), ".", 3)
	nums := make([]int, 3)
	for i, p := range parts {
		if j := strings.IndexAny(p, "-+"); j >= 0 {
			p = p[:j]
		}
		nums[i], _ = strconv.Atoi(p)
	}

	switch {
	case nums[0] > 0:
		return fmt.Sprintf("v%d.0.0", nums[0]+1)
	case nums[1] > 0:
		return fmt.Sprintf("v0.%d.0", nums[1]+1)
	default:
		return fmt.Sprintf("v0.0.%d", nums[2]+1)
	}
}
