package commitgraph

import (
	"fmt"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"
)

const lockSuffix = ".lock"

// publish runs fill against a freshly created sibling lock file and, only
// on success, renames it over target — the single indivisible step after
// which any reader sees the complete new file and never a partial one.
//
// Acquiring the lock is itself the mutual-exclusion point: a concurrent
// publish for the same target fails its exclusive create and returns
// before touching anything.
func publish(fs billy.Filesystem, target string, fill func(billy.File) error) (err error) {
	lockPath := target + lockSuffix

	lock, err := createExclusive(fs, lockPath)
	if err != nil {
		return err
	}

	ok := false
	defer func() {
		if !ok {
			_ = fs.Remove(lockPath)
		}
	}()

	if err := fill(lock); err != nil {
		_ = lock.Close()
		return err
	}

	if s, canSync := lock.(interface{ Sync() error }); canSync {
		if err := s.Sync(); err != nil {
			_ = lock.Close()
			return fmt.Errorf("commitgraph: syncing %s: %w", lockPath, err)
		}
	}

	if err := lock.Close(); err != nil {
		return fmt.Errorf("commitgraph: closing %s: %w", lockPath, err)
	}

	if err := fs.Rename(lockPath, target); err != nil {
		return fmt.Errorf("commitgraph: publishing %s: %w", target, err)
	}
	ok = true

	return nil
}

// createExclusive creates lockPath, failing if it already exists (another
// writer holds it). If the containing directory is missing, it is created
// once, permissively, and the create is retried; a second failure is
// fatal.
func createExclusive(fs billy.Filesystem, lockPath string) (billy.File, error) {
	lock, err := fs.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o666)
	if err == nil {
		return lock, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("commitgraph: acquiring lock %s: %w", lockPath, err)
	}

	dir := path.Dir(lockPath)
	if mkErr := fs.MkdirAll(dir, 0o777); mkErr != nil {
		return nil, fmt.Errorf("commitgraph: creating %s: %w", dir, mkErr)
	}

	lock, err = fs.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o666)
	if err != nil {
		return nil, fmt.Errorf("commitgraph: acquiring lock %s: %w", lockPath, err)
	}
	return lock, nil
}
