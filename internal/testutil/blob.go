package testutil

import (
	"context"
	"sync"

	"photovault/internal/blob"
	"photovault/internal/gallery"
)

// NewTestBlobStore creates an in-memory blob store.
func NewTestBlobStore() *blob.MemoryStore {
	return blob.NewMemoryStore()
}

// FlakyBlobStore wraps another BlobStore with injectable failures.
type FlakyBlobStore struct {
	Inner gallery.BlobStore

	mu        sync.Mutex
	failStore error
	failFetch error
	failURL   error
}

func NewFlakyBlobStore(inner gallery.BlobStore) *FlakyBlobStore {
	return &FlakyBlobStore{Inner: inner}
}

// FailStore makes Store return err until cleared with nil.
func (b *FlakyBlobStore) FailStore(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failStore = err
}

// FailFetch makes FetchBytes return err until cleared with nil.
func (b *FlakyBlobStore) FailFetch(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failFetch = err
}

// FailDirectURL makes DirectURL return err until cleared with nil.
func (b *FlakyBlobStore) FailDirectURL(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failURL = err
}

func (b *FlakyBlobStore) Store(ctx context.Context, id string, data []byte, onProgress func(int)) (string, error) {
	b.mu.Lock()
	err := b.failStore
	b.mu.Unlock()
	if err != nil {
		return "", err
	}
	return b.Inner.Store(ctx, id, data, onProgress)
}

func (b *FlakyBlobStore) FetchBytes(ctx context.Context, id string) ([]byte, error) {
	b.mu.Lock()
	err := b.failFetch
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return b.Inner.FetchBytes(ctx, id)
}

func (b *FlakyBlobStore) DirectURL(ctx context.Context, id string) (string, error) {
	b.mu.Lock()
	err := b.failURL
	b.mu.Unlock()
	if err != nil {
		return "", err
	}
	return b.Inner.DirectURL(ctx, id)
}

var _ gallery.BlobStore = (*FlakyBlobStore)(nil)
