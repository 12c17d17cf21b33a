package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"bee-go/internal/bee"
)

// FileSystemStore copies photos into a local directory and returns file://
// URLs. Useful for local setups and tests; the URLs are only meaningful on
// the machine that produced them.
type FileSystemStore struct {
	dir string
}

// NewFileSystemStore creates a store rooted at the given directory.
func NewFileSystemStore(dir string) (*FileSystemStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &FileSystemStore{dir: dir}, nil
}

// Put copies the content into the media directory using atomic write
// (temp file + rename) and returns a file:// URL.
func (s *FileSystemStore) Put(_ context.Context, key string, r io.Reader, size int64, _ string) (string, error) {
	destPath := filepath.Join(s.dir, key)

	tmpFile, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if written != size {
		return "", fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return "", fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return "file://" + destPath, nil
}

// ValidateSetup verifies that the media directory is accessible.
func (s *FileSystemStore) ValidateSetup(context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("media directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("media path is not a directory: %s", s.dir)
	}
	return nil
}

// Compile-time check that FileSystemStore implements bee.MediaStore
var _ bee.MediaStore = (*FileSystemStore)(nil)
