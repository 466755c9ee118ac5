// Package corebin locates, downloads and caches the platform-native core
// binary that handles every command the CLI does not implement itself.
//
// A binary already present at the install path is used as-is without any
// network traffic. Otherwise the latest GitHub release tag is looked up
// (falling back to a known-good version when the API is unreachable or rate
// limited), the release archive for the current platform is downloaded into
// a scratch directory, verified against checksums.txt when published, and
// the executable is moved onto the install path.
package corebin
