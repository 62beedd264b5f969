package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// DirLock provides cross-process locking of a scaffold target directory so
// two concurrent `stencil new` runs cannot interleave generator output and
// boilerplate writes. Works on all platforms.
type DirLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// NewDirLock creates a lock for the given directory. The lock file is
// created at <dir>/.stencil.lock.
func NewDirLock(dir string) *DirLock {
	lockPath := filepath.Join(dir, ".stencil.lock")
	return &DirLock{
		path:  lockPath,
		flock: flock.New(lockPath),
	}
}

// TryLock attempts to acquire the lock without blocking. Returns false if
// another process holds it.
func (l *DirLock) TryLock() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return false, fmt.Errorf("create lock directory: %w", err)
	}

	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquire scaffold lock: %w", err)
	}

	l.locked = acquired
	return acquired, nil
}

// Unlock releases the lock and removes the lock file. Safe to call on an
// unlocked DirLock.
func (l *DirLock) Unlock() error {
	if !l.locked {
		return nil
	}
	l.locked = false

	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("release scaffold lock: %w", err)
	}
	_ = os.Remove(l.path)
	return nil
}
