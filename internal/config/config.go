// Package config persists application settings and saved VNC servers as a
// JSON file. Passwords never land here; they go to the encrypted
// credential store.
package config

import (
	"encoding/json"
	"fmt"

	"github.com/zlc1004/VNCClientServer/internal/domain"
	"github.com/zlc1004/VNCClientServer/internal/infra"
)

// Settings are the user-tunable application options.
type Settings struct {
	AutoRun bool `json:"auto_run"`
}

// File is the on-disk config document.
type File struct {
	Settings     Settings             `json:"settings"`
	SavedServers []domain.SavedServer `json:"saved_servers"`
}

// Manager loads and saves the config file. A missing or corrupt file
// yields defaults instead of an error, matching the application's
// long-standing behavior.
type Manager struct {
	fs   *infra.FileSystem
	path string
	doc  File
}

// NewManager loads (or defaults) the config at path.
func NewManager(fs *infra.FileSystem, path string) *Manager {
	m := &Manager{fs: fs, path: path}
	m.load()
	return m
}

func (m *Manager) load() {
	m.doc = File{SavedServers: []domain.SavedServer{}}
	data, err := m.fs.ReadFile(m.path)
	if err != nil {
		return
	}
	var doc File
	if err := json.Unmarshal(data, &doc); err != nil {
		return
	}
	if doc.SavedServers == nil {
		doc.SavedServers = []domain.SavedServer{}
	}
	m.doc = doc
}

// Save writes the config back to disk.
func (m *Manager) Save() error {
	data, err := json.MarshalIndent(m.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := m.fs.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Settings returns the current settings.
func (m *Manager) Settings() Settings {
	return m.doc.Settings
}

// SetSettings replaces the settings and saves.
func (m *Manager) SetSettings(s Settings) error {
	m.doc.Settings = s
	return m.Save()
}

// SavedServers returns the saved server list.
func (m *Manager) SavedServers() []domain.SavedServer {
	return m.doc.SavedServers
}

// SaveServer adds a server, or updates the entry with the same host and
// port if one exists.
func (m *Manager) SaveServer(server domain.SavedServer) error {
	for i, existing := range m.doc.SavedServers {
		if existing.Host == server.Host && existing.Port == server.Port {
			m.doc.SavedServers[i] = server
			return m.Save()
		}
	}
	m.doc.SavedServers = append(m.doc.SavedServers, server)
	return m.Save()
}

// DeleteServer removes the server with the same host and port. Removing a
// server that was never saved is not an error.
func (m *Manager) DeleteServer(server domain.SavedServer) error {
	kept := m.doc.SavedServers[:0]
	for _, existing := range m.doc.SavedServers {
		if existing.Host == server.Host && existing.Port == server.Port {
			continue
		}
		kept = append(kept, existing)
	}
	m.doc.SavedServers = kept
	return m.Save()
}

// Path returns the config file path.
func (m *Manager) Path() string {
	return m.path
}
