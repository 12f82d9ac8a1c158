// Package diskstore implements repository.FileStore on a local directory.
package diskstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"community-board/internal/domain"
)

// DiskFileStore writes uploads into a single directory. Writes go to a
// hidden temp file first and are renamed into place, so a partially written
// upload is never visible under its final name.
type DiskFileStore struct {
	dir string
}

// NewDiskFileStore creates the store and ensures the directory exists.
func NewDiskFileStore(dir string) (*DiskFileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("diskstore: upload directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("diskstore: create upload directory %q: %w", dir, err)
	}
	return &DiskFileStore{dir: dir}, nil
}

// Save writes the upload under name. name must be a bare filesystem entry;
// anything containing a separator is refused outright.
func (s *DiskFileStore) Save(ctx context.Context, name string, upload domain.PendingUpload) (*domain.StoredUpload, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return nil, fmt.Errorf("diskstore: unsafe storage name %q", name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("diskstore: create temp file in %q: %w", s.dir, err)
	}
	written, err := io.Copy(tmp, upload.Data)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("diskstore: write upload %q: %w", name, err)
	}

	final := filepath.Join(s.dir, name)
	if err := os.Rename(tmp.Name(), final); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("diskstore: rename upload into place as %q: %w", name, err)
	}
	return &domain.StoredUpload{Name: name, Size: written}, nil
}

// Remove deletes a stored file. A missing file is not an error.
func (s *DiskFileStore) Remove(_ context.Context, name string) error {
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("diskstore: unsafe storage name %q", name)
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("diskstore: remove %q: %w", name, err)
	}
	return nil
}

// ListOlderThan returns stored names modified before cutoff. Temp files from
// in-flight writes are skipped.
func (s *DiskFileStore) ListOlderThan(_ context.Context, cutoff time.Time) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("diskstore: read upload directory %q: %w", s.dir, err)
	}
	names := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
