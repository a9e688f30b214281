package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// StaleLockAge is the age past which a leftover lock is assumed to
// belong to a dead run and is taken over.
const StaleLockAge = 10 * time.Minute

// lockName is the lock file placed at the output root.
const lockName = ".shellgen.lock"

// LockError reports that another run holds the output root.
type LockError struct {
	Path string
}

func (e *LockError) Error() string {
	return fmt.Sprintf("output root is locked by another run (remove %s if none is active)", e.Path)
}

// Lock is an exclusive hold on an output root.
type Lock struct {
	path string
	file *os.File
}

// AcquireLock takes the output root's lock via O_CREATE|O_EXCL and
// records pid and timestamp in it. A lock older than StaleLockAge is
// removed and retried once.
func AcquireLock(root string) (*Lock, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create output root: %w", err)
	}

	lockPath := filepath.Join(root, lockName)

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0600)
	if err != nil {
		if !os.IsExist(err) {
			return nil, fmt.Errorf("create lock file: %w", err)
		}
		if !isLockStale(lockPath) {
			return nil, &LockError{Path: lockPath}
		}
		os.Remove(lockPath)
		file, err = os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0600)
		if err != nil {
			return nil, &LockError{Path: lockPath}
		}
	}

	meta := fmt.Sprintf("pid=%d\ntimestamp=%s\n", os.Getpid(), time.Now().UTC().Format(time.RFC3339))
	if _, err := file.WriteString(meta); err != nil {
		file.Close()
		os.Remove(lockPath)
		return nil, fmt.Errorf("write lock metadata: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(lockPath)
		return nil, fmt.Errorf("sync lock file: %w", err)
	}

	return &Lock{path: lockPath, file: file}, nil
}

// Release drops the lock and removes its file. Releasing twice is
// harmless.
func (l *Lock) Release() error {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
	if l.path != "" {
		if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove lock file: %w", err)
		}
		l.path = ""
	}
	return nil
}

func isLockStale(lockPath string) bool {
	info, err := os.Stat(lockPath)
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) > StaleLockAge
}
