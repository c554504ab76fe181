package artifacts

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore writes artifacts below a base directory.
type LocalStore struct {
	base string
}

// NewLocalStore returns a LocalStore rooted at base.
func NewLocalStore(base string) *LocalStore {
	return &LocalStore{base: base}
}

func (s *LocalStore) Location() string {
	return s.base
}

// Put copies r to base/key via a temp file and rename.
func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean, err := cleanKey(key)
	if err != nil {
		return err
	}
	dest := filepath.Join(s.base, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".artifact-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	n, err := io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil && size >= 0 && n != size {
		err = fmt.Errorf("short write for %s: got %d of %d bytes", clean, n, size)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, dest)
}
