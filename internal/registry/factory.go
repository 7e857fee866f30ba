package registry

import (
	"fmt"
	"os"

	"photovault/internal/config"
	"photovault/internal/gallery"
)

// NewRegistryFromConfig creates a Registry implementation based on the
// registry config type.
func NewRegistryFromConfig(cfg config.RegistryConfig, clock gallery.Clock) (gallery.Registry, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite registry")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating registry data dir: %w", err)
		}
		return NewSQLiteRegistry(DatabasePath(cfg.DataDir), clock)
	case "memory":
		return NewMemoryRegistry(clock), nil
	default:
		return nil, fmt.Errorf("unknown registry type: %s", cfg.Type)
	}
}
