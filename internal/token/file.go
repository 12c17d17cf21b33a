// Package token holds the client's single durable secret: the bearer token
// persisted between runs. Backends are selected by config; the age backend
// keeps the token encrypted at rest.
package token

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bee-go/internal/bee"
)

// FileStore persists the token as a single 0600 file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the persisted token. A missing file yields "" without error.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save persists the token atomically (temp file + rename) so a crash never
// leaves a half-written slot.
func (s *FileStore) Save(token string) error {
	return writeFileAtomic(s.path, []byte(token+"\n"))
}

// Clear removes the token file. A missing file is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}

// writeFileAtomic writes data to path via a temp file in the same directory
// followed by a rename. File mode is 0600: the slot holds a credential.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".tmp-token-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if err := tmpFile.Chmod(0600); err != nil {
		tmpFile.Close()
		return fmt.Errorf("setting token file mode: %w", err)
	}

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing token: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}

// Compile-time check that FileStore implements bee.TokenStore
var _ bee.TokenStore = (*FileStore)(nil)
