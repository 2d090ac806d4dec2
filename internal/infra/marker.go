package infra

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/zlc1004/VNCClientServer/internal/domain"
)

// FileMarkerStore implements domain.MarkerStore as a small JSON sentinel
// file under the environment directory. Its mere presence means
// "dependencies already satisfied - skip reinstall"; the JSON body is
// informational only.
type FileMarkerStore struct {
	fs   *FileSystem
	path string
}

// NewFileMarkerStore creates a marker store at the given path.
func NewFileMarkerStore(fs *FileSystem, path string) *FileMarkerStore {
	return &FileMarkerStore{fs: fs, path: path}
}

// Exists reports whether the marker is present.
func (s *FileMarkerStore) Exists() bool {
	return s.fs.Exists(s.path)
}

// Write persists the marker. Only called after a fully successful install;
// partial failures must never reach here.
func (s *FileMarkerStore) Write(m domain.Marker) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal marker: %w", err)
	}
	return s.fs.WriteFile(s.path, data, 0o644)
}

// Read returns the marker contents.
func (s *FileMarkerStore) Read() (*domain.Marker, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read marker: %w", err)
	}
	var m domain.Marker
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse marker: %w", err)
	}
	return &m, nil
}

// Clear removes the marker so the next run reinstalls.
func (s *FileMarkerStore) Clear() error {
	err := s.fs.Remove(s.path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// Path returns the marker file path (for diagnostics and tests).
func (s *FileMarkerStore) Path() string {
	return s.path
}

// Ensure FileMarkerStore implements domain.MarkerStore.
var _ domain.MarkerStore = (*FileMarkerStore)(nil)
