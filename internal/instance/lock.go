package instance

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrAlreadyWatching is returned when another process holds the lock for the
// same presence file.
var ErrAlreadyWatching = errors.New("another waiter is already watching this file")

// Lock is an exclusive claim on one presence path.
type Lock struct {
	path string
	lock *flock.Flock
}

// LockPath returns the lock file used for presencePath inside dir.
func LockPath(dir, presencePath string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(presencePath)))
	return filepath.Join(dir, "watch-"+hex.EncodeToString(sum[:8])+".lock")
}

// Acquire takes the lock for presencePath without blocking.
func Acquire(dir, presencePath string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	path := LockPath(dir, presencePath)
	fl := flock.New(path)

	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrAlreadyWatching, presencePath)
	}
	return &Lock{path: path, lock: fl}, nil
}

// Path reports the lock file location.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release drops the lock. The lock file stays in place so every waiter locks
// the same inode. Safe on a nil Lock.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
