package media

import (
	"context"
	"fmt"

	"bee-go/internal/bee"
	"bee-go/internal/config"
)

// NewStoreFromConfig creates a MediaStore implementation based on the media config type.
func NewStoreFromConfig(ctx context.Context, cfg config.MediaConfig) (bee.MediaStore, error) {
	switch cfg.Type {
	case "s3":
		return NewS3Store(ctx, cfg)
	case "filesystem", "":
		if cfg.MediaDir == "" {
			return nil, fmt.Errorf("filesystem media store requires media_dir to be set")
		}
		return NewFileSystemStore(cfg.MediaDir)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown media store type: %s", cfg.Type)
	}
}
