package infra

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"path/filepath"

	"github.com/zlc1004/VNCClientServer/internal/domain"
)

const (
	keyFileName = ".key"
	keySize     = 32
)

// FileKeyProvider keeps the credential-store key in a base64 file next to
// the database. The file is mode 0600; anything else that can read the
// user's data dir can read the database anyway, so this guards against
// casual copying, not a hostile local account.
type FileKeyProvider struct {
	fs      *FileSystem
	keyPath string
}

// NewFileKeyProvider creates a provider storing its key under dataDir.
func NewFileKeyProvider(fs *FileSystem, dataDir string) *FileKeyProvider {
	return &FileKeyProvider{fs: fs, keyPath: filepath.Join(dataDir, keyFileName)}
}

func checkKeySize(key []byte) error {
	if len(key) != keySize {
		return fmt.Errorf("invalid key size: got %d, want %d", len(key), keySize)
	}
	return nil
}

// GetKey reads and decodes the stored key.
func (p *FileKeyProvider) GetKey() ([]byte, error) {
	encoded, err := p.fs.ReadFile(p.keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	key, err := base64.StdEncoding.DecodeString(string(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode key: %w", err)
	}
	if err := checkKeySize(key); err != nil {
		return nil, err
	}
	return key, nil
}

// StoreKey encodes and persists the key with restricted permissions.
func (p *FileKeyProvider) StoreKey(key []byte) error {
	if err := checkKeySize(key); err != nil {
		return err
	}
	encoded := base64.StdEncoding.EncodeToString(key)
	if err := p.fs.WriteFile(p.keyPath, []byte(encoded), 0o600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return nil
}

// KeyExists reports whether a key has been stored.
func (p *FileKeyProvider) KeyExists() bool {
	return p.fs.Exists(p.keyPath)
}

// GenerateKey returns a fresh random 256-bit key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate random key: %w", err)
	}
	return key, nil
}

// EnsureKey returns the stored key, generating and persisting one first
// if none exists yet.
func EnsureKey(provider domain.KeyProvider) ([]byte, error) {
	if provider.KeyExists() {
		return provider.GetKey()
	}
	key, err := GenerateKey()
	if err != nil {
		return nil, err
	}
	if err := provider.StoreKey(key); err != nil {
		return nil, err
	}
	return key, nil
}

var _ domain.KeyProvider = (*FileKeyProvider)(nil)
