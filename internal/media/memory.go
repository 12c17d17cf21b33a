package media

import (
	"context"
	"fmt"
	"io"
	"sync"

	"bee-go/internal/bee"
)

// MemoryStore keeps uploaded content in memory and returns memory:// URLs.
// Useful for testing. This implementation is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte // key -> content
}

// NewMemoryStore creates an empty in-memory media store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// Put stores the content under the key and returns a memory:// URL.
func (s *MemoryStore) Put(_ context.Context, key string, r io.Reader, size int64, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}
	if int64(len(data)) != size {
		return "", fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return "memory://" + key, nil
}

// Get returns stored content by key. Test helper.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}

// ValidateSetup always succeeds for the in-memory store.
func (s *MemoryStore) ValidateSetup(context.Context) error {
	return nil
}

// Compile-time check that MemoryStore implements bee.MediaStore
var _ bee.MediaStore = (*MemoryStore)(nil)
