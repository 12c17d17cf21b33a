package database

import (
	"fmt"
	"os"
	"path/filepath"

	"bee-go/internal/bee"
	"bee-go/internal/config"
)

// NewStoreFromConfig creates a SQLiteStore based on the database config type.
// The memory variant is migrated on creation since it is always fresh.
func NewStoreFromConfig(cfg config.DatabaseConfig, clock bee.Clock) (*SQLiteStore, error) {
	switch cfg.Type {
	case "sqlite", "":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		return NewSQLiteStore(filepath.Join(cfg.DataDir, "bee.db"), clock)
	case "memory":
		store, err := NewSQLiteStore(":memory:", clock)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(); err != nil {
			store.Close()
			return nil, fmt.Errorf("migrating in-memory database: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
