package blob

import (
	"context"
	"fmt"
	"sync"

	"photovault/internal/gallery"
)

// MemoryStore is an in-memory implementation of the BlobStore interface,
// useful for testing and throwaway setups. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	content map[string][]byte
}

// NewMemoryStore creates an empty in-memory blob store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{content: make(map[string][]byte)}
}

// Store keeps a private copy of data under id. Progress is reported once,
// complete, since the write is instantaneous.
func (m *MemoryStore) Store(_ context.Context, id string, data []byte, onProgress func(int)) (string, error) {
	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	m.content[id] = buf
	m.mu.Unlock()

	if onProgress != nil {
		onProgress(100)
	}
	return "mem:" + id, nil
}

// FetchBytes returns the content stored under id.
func (m *MemoryStore) FetchBytes(_ context.Context, id string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.content[id]
	if !ok {
		return nil, fmt.Errorf("%w: content not found: %s", gallery.ErrBlobUnavailable, id)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// DirectURL returns a memory:// pseudo-URL for id.
func (m *MemoryStore) DirectURL(_ context.Context, id string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.content[id]; !ok {
		return "", fmt.Errorf("%w: content not found: %s", gallery.ErrBlobUnavailable, id)
	}
	return "memory://" + id, nil
}

// Len returns the number of stored blobs.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.content)
}

var _ gallery.BlobStore = (*MemoryStore)(nil)
