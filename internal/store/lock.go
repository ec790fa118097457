package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"flightline/internal/logging"
)

const lockFileSuffix = ".lock"

// WriteLock serialises board writers across processes with a lock file next
// to the database.
type WriteLock struct {
	lock *flock.Flock
	path string
}

// NewWriteLock creates the lock for the database at dbPath. It is not taken
// until Lock is called.
func NewWriteLock(dbPath string) (*WriteLock, error) {
	absPath, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("could not get absolute db path: %w", err)
	}
	lockPath := absPath + lockFileSuffix
	return &WriteLock{lock: flock.New(lockPath), path: lockPath}, nil
}

// Lock acquires the lock, waiting for another writer when there is one.
func (l *WriteLock) Lock() error {
	locked, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", l.path, err)
	}
	if !locked {
		logging.Log.Warnf("Another flightline process is writing to the board, waiting for it to finish...")
		if err := l.lock.Lock(); err != nil {
			return fmt.Errorf("failed to acquire lock on %s after waiting: %w", l.path, err)
		}
	}
	return nil
}

// Unlock releases the lock.
func (l *WriteLock) Unlock() error {
	if err := l.lock.Unlock(); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	return nil
}

// Path returns the lock file path.
func (l *WriteLock) Path() string {
	return l.path
}
