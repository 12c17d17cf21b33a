package token

import (
	"fmt"

	"bee-go/internal/bee"
	"bee-go/internal/config"
)

// NewStoreFromConfig creates a TokenStore implementation based on the token config type.
func NewStoreFromConfig(cfg config.TokenConfig) (bee.TokenStore, error) {
	switch cfg.Type {
	case "file", "":
		if cfg.Path == "" {
			return nil, fmt.Errorf("file token store requires path to be set")
		}
		return NewFileStore(cfg.Path), nil
	case "age":
		if cfg.Path == "" || cfg.RecipientPath == "" || cfg.IdentityPath == "" {
			return nil, fmt.Errorf("age token store requires path, recipient_path and identity_path to be set")
		}
		return NewAgeStore(cfg.Path, cfg.RecipientPath, cfg.IdentityPath), nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown token store type: %s", cfg.Type)
	}
}
