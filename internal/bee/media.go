package bee

import (
	"context"
	"io"
)

// MediaStore uploads photo content and returns a URL the backend can serve
// to other clients. Content is streamed; size is the number of bytes that
// will be read from r.
type MediaStore interface {
	// Put stores the content under the given key and returns its public URL.
	// Storing the same key twice overwrites; callers use unique keys.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)

	// ValidateSetup verifies that the store is accessible and properly
	// configured.
	ValidateSetup(ctx context.Context) error
}
