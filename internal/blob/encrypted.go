package blob

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"photovault/internal/encryption"
	"photovault/internal/gallery"
)

// EncryptedStore wraps another BlobStore with client-side encryption:
// content is encrypted with the public key before it leaves the machine
// and decrypted on fetch. Direct URLs pass through unchanged and therefore
// point at ciphertext; sharing them is only useful to holders of the key.
type EncryptedStore struct {
	inner  gallery.BlobStore
	enc    encryption.Encryptor
	unlock func() (encryption.DecryptionContext, error)

	mu  sync.Mutex
	dec encryption.DecryptionContext
}

// NewEncryptedStore wraps inner with the given encryptor. unlock is called
// at most once, on the first fetch, to obtain the decryption context —
// typically by prompting for the key passphrase.
func NewEncryptedStore(inner gallery.BlobStore, enc encryption.Encryptor, unlock func() (encryption.DecryptionContext, error)) *EncryptedStore {
	return &EncryptedStore{inner: inner, enc: enc, unlock: unlock}
}

// Store encrypts data and stores the ciphertext under id. Progress
// reported by the inner store tracks the ciphertext upload.
func (e *EncryptedStore) Store(ctx context.Context, id string, data []byte, onProgress func(int)) (string, error) {
	var buf bytes.Buffer
	if err := e.enc.Encrypt(bytes.NewReader(data), &buf); err != nil {
		return "", fmt.Errorf("encrypting content: %w", err)
	}
	return e.inner.Store(ctx, id, buf.Bytes(), onProgress)
}

// FetchBytes fetches the ciphertext under id and decrypts it.
func (e *EncryptedStore) FetchBytes(ctx context.Context, id string) ([]byte, error) {
	ciphertext, err := e.inner.FetchBytes(ctx, id)
	if err != nil {
		return nil, err
	}

	dec, err := e.decryptionContext()
	if err != nil {
		return nil, fmt.Errorf("unlocking decryption key: %w", err)
	}

	var buf bytes.Buffer
	if err := dec.Decrypt(bytes.NewReader(ciphertext), &buf); err != nil {
		return nil, fmt.Errorf("decrypting content: %w", err)
	}
	return buf.Bytes(), nil
}

// DirectURL resolves through the inner store.
func (e *EncryptedStore) DirectURL(ctx context.Context, id string) (string, error) {
	return e.inner.DirectURL(ctx, id)
}

func (e *EncryptedStore) decryptionContext() (encryption.DecryptionContext, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dec != nil {
		return e.dec, nil
	}
	dec, err := e.unlock()
	if err != nil {
		return nil, err
	}
	e.dec = dec
	return dec, nil
}

var _ gallery.BlobStore = (*EncryptedStore)(nil)
