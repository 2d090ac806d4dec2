package infra

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Ensure sqlcipher driver is registered.
	_ "github.com/mutecomm/go-sqlcipher/v4"

	"github.com/zlc1004/VNCClientServer/internal/domain"
)

const credentialDBName = "credentials.db"

// OpenCredentialStore opens the encrypted store under dataDir, creating
// the encryption key on first use.
func OpenCredentialStore(dataDir string) (*EncryptedCredentialStore, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	key, err := EnsureKey(NewFileKeyProvider(NewFileSystem(), dataDir))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare encryption key: %w", err)
	}
	return NewEncryptedCredentialStore(dataDir, key)
}

// EncryptedCredentialStore implements domain.CredentialStore using a
// SQLCipher encrypted SQLite database. Saved-server passwords never touch
// the plain JSON config file.
type EncryptedCredentialStore struct {
	db     *sql.DB
	dbPath string
}

// NewEncryptedCredentialStore opens (or creates) the encrypted credential
// database. The key is used as the SQLCipher passphrase via PRAGMA key.
func NewEncryptedCredentialStore(dataDir string, key []byte) (*EncryptedCredentialStore, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, credentialDBName)
	keyHex := hex.EncodeToString(key)

	dsn := fmt.Sprintf("%s?_pragma_key=x'%s'&_pragma_cipher_page_size=4096", dbPath, keyHex)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open encrypted database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to encrypted database: %w", err)
	}

	store := &EncryptedCredentialStore{db: db, dbPath: dbPath}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return store, nil
}

func (s *EncryptedCredentialStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS credentials (
		server_key TEXT PRIMARY KEY,
		password TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// GetPassword retrieves the password for a server key ("host:port").
func (s *EncryptedCredentialStore) GetPassword(serverKey string) (string, error) {
	var password string
	err := s.db.QueryRow(`SELECT password FROM credentials WHERE server_key = ?`, serverKey).Scan(&password)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("no password stored for %q", serverKey)
	}
	return password, err
}

// SetPassword stores or replaces the password for a server key.
func (s *EncryptedCredentialStore) SetPassword(serverKey, password string) error {
	now := time.Now().Unix()
	_, err := s.db.Exec(`INSERT OR REPLACE INTO credentials (server_key, password, updated_at) VALUES (?, ?, ?)`,
		serverKey, password, now)
	return err
}

// DeletePassword removes the password for a server key. Deleting a key
// that was never stored is not an error.
func (s *EncryptedCredentialStore) DeletePassword(serverKey string) error {
	_, err := s.db.Exec(`DELETE FROM credentials WHERE server_key = ?`, serverKey)
	return err
}

// Path returns the database file path (for tests).
func (s *EncryptedCredentialStore) Path() string {
	return s.dbPath
}

// Close releases the database connection.
func (s *EncryptedCredentialStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ensure EncryptedCredentialStore implements domain.CredentialStore.
var _ domain.CredentialStore = (*EncryptedCredentialStore)(nil)
