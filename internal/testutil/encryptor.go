package testutil

import (
	"photovault/internal/encryption"
)

// NewTestEncryptor creates a passphrase-free encryptor for testing.
func NewTestEncryptor() encryption.Encryptor {
	return encryption.NewTestEncryptor()
}
