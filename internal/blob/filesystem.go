package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"photovault/internal/gallery"
)

// storeChunkSize is how many bytes are written between progress reports.
const storeChunkSize = 256 * 1024

// FileSystemStore keeps blob content as flat files under a root directory:
//
//	<root>/
//	  content/
//	    <id>
type FileSystemStore struct {
	root       string
	contentDir string
}

// NewFileSystemStore creates a filesystem blob store rooted at the given path.
func NewFileSystemStore(root string) (*FileSystemStore, error) {
	contentDir := filepath.Join(root, "content")
	if err := os.MkdirAll(contentDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create content directory: %w", err)
	}
	return &FileSystemStore{root: root, contentDir: contentDir}, nil
}

// Store writes data to <root>/content/<id>, reporting progress per chunk.
// The write goes to a temp file first and is renamed into place so a
// failed store never leaves a truncated blob behind.
func (s *FileSystemStore) Store(_ context.Context, id string, data []byte, onProgress func(int)) (string, error) {
	destPath := filepath.Join(s.contentDir, id)

	tmp, err := os.CreateTemp(s.contentDir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("%w: creating temp file: %v", gallery.ErrBlobUnavailable, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	total := len(data)
	for written := 0; written < total; written += storeChunkSize {
		end := written + storeChunkSize
		if end > total {
			end = total
		}
		if _, err := tmp.Write(data[written:end]); err != nil {
			tmp.Close()
			return "", fmt.Errorf("%w: writing content: %v", gallery.ErrBlobUnavailable, err)
		}
		if onProgress != nil {
			onProgress(end * 100 / total)
		}
	}
	if total == 0 && onProgress != nil {
		onProgress(100)
	}

	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: closing temp file: %v", gallery.ErrBlobUnavailable, err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return "", fmt.Errorf("%w: finalizing content: %v", gallery.ErrBlobUnavailable, err)
	}
	return "fs:" + id, nil
}

// FetchBytes reads the full content stored under id.
func (s *FileSystemStore) FetchBytes(_ context.Context, id string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.contentDir, id))
	if err != nil {
		return nil, fmt.Errorf("%w: content not found: %s", gallery.ErrBlobUnavailable, id)
	}
	return data, nil
}

// DirectURL returns a file:// URL pointing at the stored content.
func (s *FileSystemStore) DirectURL(_ context.Context, id string) (string, error) {
	path := filepath.Join(s.contentDir, id)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: content not found: %s", gallery.ErrBlobUnavailable, id)
	}
	return "file://" + path, nil
}

var _ gallery.BlobStore = (*FileSystemStore)(nil)
