// Package version holds the edi version and the compatibility gate that
// compares it against the minimum version a configuration asks for.
package version

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"

	"github.com/edi-build/edi/internal/errors"
)

// Version is the running edi version. Release builds override it with
// -ldflags "-X github.com/edi-build/edi/internal/version.Version=...".
var Version = "1.5.0"

// strippedRegex keeps MAJOR[.MINOR[.PATCH]] and drops any suffix such as
// "-rc1", ".dev3" or "+git1234".
var strippedRegex = regexp.MustCompile(`^\d+(\.\d+){0,2}`)

// Strip returns the leading MAJOR[.MINOR[.PATCH]] part of v.
func Strip(v string) (string, error) {
	stripped := strippedRegex.FindString(v)
	if stripped == "" {
		return "", fmt.Errorf("unable to parse version %q", v)
	}
	return stripped, nil
}

// Parse strips v and parses the remainder with semantic precedence.
func Parse(v string) (*semver.Version, error) {
	stripped, err := Strip(v)
	if err != nil {
		return nil, err
	}
	return semver.NewVersion(stripped)
}

// Check fails with a version mismatch error when current is older than
// required. Suffixes are ignored on both sides, so "2.0.0-rc1" satisfies
// a requirement of "2.0".
func Check(required, current string) error {
	req, err := Parse(required)
	if err != nil {
		return errors.ConfigError("invalid required edi version", err)
	}
	cur, err := Parse(current)
	if err != nil {
		return errors.ConfigError("invalid edi version", err)
	}

	if cur.LessThan(req) {
		stripped, _ := Strip(required)
		return errors.VersionMismatch(stripped)
	}
	return nil
}
