// Package infra implements infrastructure concerns (filesystem, process,
// command execution, autostart, credential storage).
package infra

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FileSystem wraps an afero.Fs with the path helpers the installer and
// prober need. Tests inject afero.NewMemMapFs() so no real installs or
// filesystem walks happen.
type FileSystem struct {
	fs      afero.Fs
	homeDir string
}

// NewFileSystem creates a filesystem manager over the real OS filesystem.
func NewFileSystem() *FileSystem {
	home, _ := os.UserHomeDir()
	return &FileSystem{fs: afero.NewOsFs(), homeDir: home}
}

// NewFileSystemWithFs creates a filesystem manager over a custom afero.Fs
// and home directory (for testing).
func NewFileSystemWithFs(fs afero.Fs, home string) *FileSystem {
	return &FileSystem{fs: fs, homeDir: home}
}

// Fs exposes the underlying afero.Fs for direct reads/writes.
func (f *FileSystem) Fs() afero.Fs {
	return f.fs
}

// Exists checks if a path exists.
func (f *FileSystem) Exists(path string) bool {
	expanded := f.ExpandHome(path)
	_, err := f.fs.Stat(expanded)
	return err == nil
}

// IsDir checks if a path exists and is a directory.
func (f *FileSystem) IsDir(path string) bool {
	info, err := f.fs.Stat(f.ExpandHome(path))
	return err == nil && info.IsDir()
}

// MkdirAll creates a directory and any missing parents.
func (f *FileSystem) MkdirAll(path string, perm os.FileMode) error {
	return f.fs.MkdirAll(f.ExpandHome(path), perm)
}

// ReadFile reads the named file.
func (f *FileSystem) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(f.fs, f.ExpandHome(path))
}

// WriteFile writes data to the named file, creating parent directories as
// needed.
func (f *FileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	expanded := f.ExpandHome(path)
	if err := f.fs.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(f.fs, expanded, data, perm)
}

// Remove deletes the named file.
func (f *FileSystem) Remove(path string) error {
	return f.fs.Remove(f.ExpandHome(path))
}

// GlobDir returns names in dir whose base name matches pattern, sorted by
// directory order. Only the immediate directory is searched.
func (f *FileSystem) GlobDir(dir, pattern string) ([]string, error) {
	entries, err := afero.ReadDir(f.fs, f.ExpandHome(dir))
	if err != nil {
		return nil, err
	}
	var matches []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, filepath.Join(dir, e.Name()))
		}
	}
	return matches, nil
}

// errStopWalk short-circuits a walk once a match is found.
var errStopWalk = errors.New("stop walk")

// FindFirstMatch walks root recursively and returns the first file whose
// base name matches pattern, or "" if nothing matches. The walk stops at
// the first hit to avoid exhaustive filesystem scans.
func (f *FileSystem) FindFirstMatch(root, pattern string) (string, error) {
	var found string
	err := afero.Walk(f.fs, f.ExpandHome(root), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // unreadable subtree, keep going
		}
		if info.IsDir() {
			return nil
		}
		ok, matchErr := filepath.Match(pattern, filepath.Base(path))
		if matchErr != nil {
			return matchErr
		}
		if ok {
			found = path
			return errStopWalk
		}
		return nil
	})
	if err != nil && err != errStopWalk {
		return "", err
	}
	return found, nil
}

// ExpandHome expands ~ to the user's home directory.
func (f *FileSystem) ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(f.homeDir, path[2:])
	}
	if path == "~" {
		return f.homeDir
	}
	return path
}
