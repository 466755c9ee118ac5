// Package platform provides cross-platform filesystem operations: permission
// changes that are a no-op on Windows, atomic rename-on-write, moves that
// survive crossing filesystems, and an exclusive advisory file lock backed
// by flock(2) on Unix and LockFileEx on Windows.
package platform
