package platform

import (
	"fmt"
	"os"
)

// FileLock is an exclusive advisory lock held on a sidecar lock file.
type FileLock struct {
	f *os.File
}

// Lock blocks until it holds an exclusive lock on path (created if needed).
// The lock is released by Unlock or when the process exits.
func Lock(path string) (*FileLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening lock file %s: %w", path, err)
	}
	if err := lockFile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}
	return &FileLock{f: f}, nil
}

// Unlock releases the lock. The lock file itself is left in place: removing
// it would let a waiter lock an unlinked inode.
func (l *FileLock) Unlock() error {
	if l == nil || l.f == nil {
		return nil
	}
	err := unlockFile(l.f)
	if cerr := l.f.Close(); err == nil {
		err = cerr
	}
	l.f = nil
	return err
}
