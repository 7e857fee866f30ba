package blob

import (
	"context"
	"fmt"

	"photovault/internal/config"
	"photovault/internal/gallery"
)

// NewStoreFromConfig creates a BlobStore implementation based on the blob
// config type. Encryption wrapping is the caller's concern: the factory
// returns the bare transport.
func NewStoreFromConfig(ctx context.Context, cfg config.BlobConfig) (gallery.BlobStore, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem blob store requires fs_root to be set")
		}
		return NewFileSystemStore(cfg.FSRoot)
	case "s3":
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown blob store type: %s", cfg.Type)
	}
}
