//go:build linux

package infra

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/zlc1004/VNCClientServer/internal/domain"
)

// DesktopAutostart implements domain.AutostartManager with an XDG
// autostart .desktop entry.
type DesktopAutostart struct {
	fs        *FileSystem
	entryPath string
}

// NewAutostartManager creates the platform autostart manager. The runner
// is unused on Linux; the entry is a plain file.
func NewAutostartManager(_ domain.CommandRunner) domain.AutostartManager {
	return newDesktopAutostart(NewFileSystem(), filepath.Join(xdg.ConfigHome, "autostart", "vncqrserver.desktop"))
}

func newDesktopAutostart(fs *FileSystem, entryPath string) *DesktopAutostart {
	return &DesktopAutostart{fs: fs, entryPath: entryPath}
}

// renderDesktopEntry produces the .desktop autostart document.
func renderDesktopEntry(execPath string) []byte {
	entry := fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Exec=%s run
Path=%s
X-GNOME-Autostart-enabled=true
`, autostartAppName, execPath, filepath.Dir(execPath))
	return []byte(entry)
}

// Install writes the .desktop autostart entry.
func (a *DesktopAutostart) Install(execPath string) error {
	if err := a.fs.WriteFile(a.entryPath, renderDesktopEntry(execPath), 0o644); err != nil {
		return fmt.Errorf("failed to write autostart entry: %w", err)
	}
	return nil
}

// Uninstall removes the autostart entry. A missing entry is not an error.
func (a *DesktopAutostart) Uninstall() error {
	err := a.fs.Remove(a.entryPath)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// IsInstalled checks if the autostart entry exists.
func (a *DesktopAutostart) IsInstalled() bool {
	return a.fs.Exists(a.entryPath)
}

var _ domain.AutostartManager = (*DesktopAutostart)(nil)
