package playlist

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ReadFile loads the artifact at path. A missing file is an empty queue.
func ReadFile(path string) (Queue, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Queue{}, nil
		}
		return Queue{}, fmt.Errorf("open playlist: %w", err)
	}
	defer f.Close()
	return Unmarshal(f)
}

// WriteFile replaces the artifact at path with q. Readers observe either the
// previous complete file or the new one.
func WriteFile(path string, q Queue) error {
	return WriteAtomic(path, q.Marshal())
}

// WriteAtomic writes data to a hidden temporary file next to path and renames
// it into place.
func WriteAtomic(path string, data []byte) error {
	tmp, err := writeTemp(path, data)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename tmp: %w", err)
	}
	return nil
}

// WriteAtomicIfUnchanged is WriteAtomic for read-modify-write cycles: the
// target is re-read right before the rename and left alone when it is gone or
// no longer holds expected. It reports whether data was written.
func WriteAtomicIfUnchanged(path string, expected, data []byte) (bool, error) {
	tmp, err := writeTemp(path, data)
	if err != nil {
		return false, err
	}
	current, err := os.ReadFile(path)
	if err != nil || !bytes.Equal(current, expected) {
		_ = os.Remove(tmp)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("recheck %s: %w", filepath.Base(path), err)
		}
		return false, nil
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return false, fmt.Errorf("rename tmp: %w", err)
	}
	return true, nil
}

func writeTemp(path string, data []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	tmp := filepath.Join(dir, "."+filepath.Base(path)+".tmp-"+uuid.NewString())
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open tmp: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write tmp: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("sync tmp: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("close tmp: %w", err)
	}
	return tmp, nil
}
