package joining

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked reports that another join run holds the lock for a root.
var ErrLocked = errors.New("another join run is active for this root")

// RootLock is an advisory lock scoped to one sample root.
type RootLock struct {
	path string
	lock *flock.Flock
}

// LockPath returns the lock file used for root inside lockDir.
func LockPath(lockDir, root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(lockDir, "join-"+hex.EncodeToString(sum[:8])+".lock"), nil
}

// AcquireRootLock takes the lock for root without blocking.
func AcquireRootLock(lockDir, root string) (*RootLock, error) {
	path, err := LockPath(lockDir, root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, path)
	}
	return &RootLock{path: path, lock: lock}, nil
}

// Path returns the lock file path.
func (l *RootLock) Path() string {
	return l.path
}

// Release unlocks the root.
func (l *RootLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
