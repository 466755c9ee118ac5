package corebin

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// FallbackVersion is the last known-good core release. It is used whenever
// the latest release cannot be determined so a flaky API never blocks a
// command.
const FallbackVersion = "1.3.0"

// normalizeTag strips a leading "v" from a release tag and checks that the
// remainder is a semantic version. The returned string is what GoReleaser
// puts in archive names.
func normalizeTag(tag string) (string, error) {
	version := strings.TrimPrefix(strings.TrimSpace(tag), "v")
	if version == "" {
		return "", fmt.Errorf("empty release tag")
	}
	if _, err := semver.NewVersion(version); err != nil {
		return "", fmt.Errorf("release tag %q is not a semantic version: %w", tag, err)
	}
	return version, nil
}
