package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic replaces path with data through a temporary file in the same
// directory. Concurrent writers to the same path are serialized by an advisory
// lock on path + ".lock".
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return WithLock(path+".lock", func() error {
		tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
		if err != nil {
			return fmt.Errorf("create temp file: %w", err)
		}
		tmpName := tmp.Name()
		committed := false
		defer func() {
			if !committed {
				_ = os.Remove(tmpName)
			}
		}()
		if _, err := tmp.Write(data); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("write %s: %w", filepath.Base(path), err)
		}
		if err := tmp.Sync(); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("sync %s: %w", filepath.Base(path), err)
		}
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("close %s: %w", filepath.Base(path), err)
		}
		if err := os.Chmod(tmpName, perm); err != nil {
			return fmt.Errorf("chmod %s: %w", filepath.Base(path), err)
		}
		if err := os.Rename(tmpName, path); err != nil {
			return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
		}
		committed = true
		return nil
	})
}

// WithLock runs fn while holding an exclusive advisory lock on lockPath.
func WithLock(lockPath string, fn func() error) error {
	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock: %w", err)
	}
	defer file.Close()
	if err := lock(file); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer func() { _ = unlock(file) }()
	return fn()
}
