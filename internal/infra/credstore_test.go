package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCredentialStore opens an encrypted store in a temp directory.
func newTestCredentialStore(t *testing.T) *EncryptedCredentialStore {
	t.Helper()
	dataDir := t.TempDir()
	key, err := GenerateKey()
	require.NoError(t, err)

	store, err := NewEncryptedCredentialStore(dataDir, key)
	require.NoError(t, err)

	t.Cleanup(func() { store.Close() })
	return store
}

func TestEncryptedCredentialStore_SetGetRoundTrip(t *testing.T) {
	store := newTestCredentialStore(t)

	require.NoError(t, store.SetPassword("10.0.0.5:5900", "secret"))

	password, err := store.GetPassword("10.0.0.5:5900")
	require.NoError(t, err)
	assert.Equal(t, "secret", password)
}

func TestEncryptedCredentialStore_SetOverwrites(t *testing.T) {
	store := newTestCredentialStore(t)

	require.NoError(t, store.SetPassword("10.0.0.5:5900", "old"))
	require.NoError(t, store.SetPassword("10.0.0.5:5900", "new"))

	password, err := store.GetPassword("10.0.0.5:5900")
	require.NoError(t, err)
	assert.Equal(t, "new", password)
}

func TestEncryptedCredentialStore_GetUnknownKey(t *testing.T) {
	store := newTestCredentialStore(t)

	_, err := store.GetPassword("nowhere:5900")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no password stored")
}

func TestEncryptedCredentialStore_Delete(t *testing.T) {
	store := newTestCredentialStore(t)
	require.NoError(t, store.SetPassword("10.0.0.5:5900", "secret"))

	require.NoError(t, store.DeletePassword("10.0.0.5:5900"))

	_, err := store.GetPassword("10.0.0.5:5900")
	assert.Error(t, err)

	// Deleting again is not an error.
	require.NoError(t, store.DeletePassword("10.0.0.5:5900"))
}

func TestEncryptedCredentialStore_PersistsAcrossReopen(t *testing.T) {
	dataDir := t.TempDir()
	key, err := GenerateKey()
	require.NoError(t, err)

	store, err := NewEncryptedCredentialStore(dataDir, key)
	require.NoError(t, err)
	require.NoError(t, store.SetPassword("10.0.0.5:5900", "secret"))
	require.NoError(t, store.Close())

	reopened, err := NewEncryptedCredentialStore(dataDir, key)
	require.NoError(t, err)
	defer reopened.Close()

	password, err := reopened.GetPassword("10.0.0.5:5900")
	require.NoError(t, err)
	assert.Equal(t, "secret", password)
}

func TestEncryptedCredentialStore_WrongKeyFailsToOpen(t *testing.T) {
	dataDir := t.TempDir()
	key, err := GenerateKey()
	require.NoError(t, err)

	store, err := NewEncryptedCredentialStore(dataDir, key)
	require.NoError(t, err)
	require.NoError(t, store.SetPassword("10.0.0.5:5900", "secret"))
	require.NoError(t, store.Close())

	wrongKey, err := GenerateKey()
	require.NoError(t, err)

	reopened, err := NewEncryptedCredentialStore(dataDir, wrongKey)
	if err == nil {
		defer reopened.Close()
		_, err = reopened.GetPassword("10.0.0.5:5900")
	}
	assert.Error(t, err, "a different key must not decrypt the store")
}

func TestOpenCredentialStore_CreatesKeyOnFirstUse(t *testing.T) {
	dataDir := t.TempDir()

	store, err := OpenCredentialStore(dataDir)
	require.NoError(t, err)
	require.NoError(t, store.SetPassword("10.0.0.5:5900", "secret"))
	require.NoError(t, store.Close())

	// Second open reuses the generated key and sees the stored password.
	reopened, err := OpenCredentialStore(dataDir)
	require.NoError(t, err)
	defer reopened.Close()

	password, err := reopened.GetPassword("10.0.0.5:5900")
	require.NoError(t, err)
	assert.Equal(t, "secret", password)
}
