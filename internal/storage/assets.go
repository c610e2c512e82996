package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/RitAreaSciencePark/ExO/internal/domain"
)

// allowedExtensions are the upload types the pool accepts.
var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".tif":  {},
	".tiff": {},
}

// FilesystemAssetStore implements domain.AssetStore on a flat directory.
type FilesystemAssetStore struct {
	dir string
}

// NewFilesystemAssetStore opens the image directory, creating it if needed.
func NewFilesystemAssetStore(dir string) (*FilesystemAssetStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}
	return &FilesystemAssetStore{dir: dir}, nil
}

// Dir returns the backing directory.
func (s *FilesystemAssetStore) Dir() string {
	return s.dir
}

// List re-enumerates the directory on every call. Readdirnames keeps the
// platform's iteration order: the pool contract leaves ordering undefined.
func (s *FilesystemAssetStore) List() ([]string, error) {
	f, err := os.Open(s.dir)
	if err != nil {
		return nil, fmt.Errorf("open images dir: %w", err)
	}
	defer func() { _ = f.Close() }()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("list images dir: %w", err)
	}
	return names, nil
}

// Open returns a reader for the named image, or domain.ErrAssetNotFound.
func (s *FilesystemAssetStore) Open(name string) (io.ReadCloser, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, domain.ErrAssetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return f, nil
}

// Store writes one image into the pool, overwriting any existing file of the
// same name. Rejects names outside the allowed extension set with
// domain.ErrInvalidUpload.
func (s *FilesystemAssetStore) Store(name string, r io.Reader) error {
	path, err := s.resolve(name)
	if err != nil {
		return fmt.Errorf("%w: bad filename %q", domain.ErrInvalidUpload, name)
	}

	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := allowedExtensions[ext]; !ok {
		return fmt.Errorf("%w: unsupported file type %q", domain.ErrInvalidUpload, ext)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("store %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("store %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("store %s: %w", name, err)
	}
	return nil
}

// Delete removes one image, returning domain.ErrAssetNotFound if absent.
func (s *FilesystemAssetStore) Delete(name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return domain.ErrAssetNotFound
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

// DeleteAll empties the pool. Subdirectories are left alone.
func (s *FilesystemAssetStore) DeleteAll() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("list images dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return fmt.Errorf("delete %s: %w", e.Name(), err)
		}
	}
	return nil
}

// resolve rejects anything that is not a bare filename inside the pool
// directory.
func (s *FilesystemAssetStore) resolve(name string) (string, error) {
	if name == "" || name == "." || name == ".." || name != filepath.Base(name) {
		return "", domain.ErrAssetNotFound
	}
	return filepath.Join(s.dir, name), nil
}
