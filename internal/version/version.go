// Package version reports the build version of beku, normalised through
// semantic version parsing where possible.
package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// raw is overridden at build time via -ldflags
// "-X github.com/stackabletech/beku/internal/version.raw=1.2.3".
var raw = "0.0.0-dev"

// String returns the normalised semantic version string. If raw does not
// parse as a semantic version (e.g. a malformed build), it falls back to
// raw itself so --version never fails outright.
func String() string {
	v, err := semver.NewVersion(strings.TrimPrefix(raw, "v"))
	if err != nil {
		return raw
	}
	return v.String()
}
