package database

import (
	"fmt"
	"os"
	"path/filepath"

	"gallery-go/internal/config"
	"gallery-go/internal/gallery"
)

// NewStoreFromConfig opens the artwork store selected by the database config.
func NewStoreFromConfig(cfg config.DatabaseConfig, instanceID string, logger gallery.Logger) (*SQLiteStore, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		if instanceID == "" {
			return nil, fmt.Errorf("instance_id required for sqlite database")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dbPath := filepath.Join(cfg.DataDir, instanceID+".db")
		return NewSQLiteStore(dbPath, logger)
	case "memory":
		return NewSQLiteStore(":memory:", logger)
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
