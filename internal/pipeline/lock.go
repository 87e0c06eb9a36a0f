package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFilename is the advisory lock file created inside the input root.
const LockFilename = ".cr4te.lock"

// ErrLocked is returned when another build holds the input lock.
var ErrLocked = errors.New("another cr4te build is already running on this input")

// acquireLock takes the input lock without blocking. The returned function
// releases it.
func acquireLock(inputRoot string) (func() error, error) {
	lock := flock.New(filepath.Join(inputRoot, LockFilename))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return lock.Unlock, nil
}
