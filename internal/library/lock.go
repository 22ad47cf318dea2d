package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

// LockTimeout is the default timeout for acquiring the library lock.
const LockTimeout = 2 * time.Second

const (
	lockSuffix      = ".lock"
	lockPollInitial = 5 * time.Millisecond
	lockPollMax     = 100 * time.Millisecond
)

// WithLock runs handler while holding an exclusive advisory lock for the
// library file at path. The lock lives in a sibling "<path>.lock" file and
// only excludes other callers of WithLock; plain readers are not blocked.
func WithLock(path string, timeout time.Duration, handler func() error) error {
	lock, err := acquireLock(path, timeout)
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}

	defer lock.release()

	return handler()
}

// fileLock represents a held lock.
type fileLock struct {
	path string
	file *os.File
}

// release removes the lock file while still holding the lock, then unlocks.
func (l *fileLock) release() {
	if l.file == nil {
		return
	}

	_ = os.Remove(l.path)
	_ = unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	_ = l.file.Close()
	l.file = nil
}

// acquireLock polls a non-blocking flock with backoff until it succeeds or
// timeout passes. After locking, the inode at the path is compared with the
// locked descriptor: a holder deletes the file on release, so a waiter may
// end up locking an unlinked inode and must retry on the new file.
func acquireLock(path string, timeout time.Duration) (*fileLock, error) {
	lockPath := path + lockSuffix
	deadline := time.Now().Add(timeout)
	wait := lockPollInitial

	err := os.MkdirAll(filepath.Dir(lockPath), dirPerms)
	if err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	for {
		file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, filePerms)
		if err != nil {
			return nil, fmt.Errorf("open lock file: %w", err)
		}

		fd := int(file.Fd())

		err = unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			same, statErr := sameInode(fd, lockPath)
			if statErr == nil && same {
				return &fileLock{path: lockPath, file: file}, nil
			}

			_ = unix.Flock(fd, unix.LOCK_UN)
			_ = file.Close()

			continue
		}

		_ = file.Close()

		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EINTR) {
			return nil, fmt.Errorf("flock: %w", err)
		}

		if time.Now().Add(wait).After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, path)
		}

		time.Sleep(wait)

		wait = min(wait*2, lockPollMax)
	}
}

func sameInode(fd int, path string) (bool, error) {
	var open, onDisk unix.Stat_t

	err := unix.Fstat(fd, &open)
	if err != nil {
		return false, err
	}

	err = unix.Stat(path, &onDisk)
	if err != nil {
		return false, err
	}

	return open.Dev == onDisk.Dev && open.Ino == onDisk.Ino, nil
}
