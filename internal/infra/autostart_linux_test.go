//go:build linux

package infra

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDesktopAutostart() *DesktopAutostart {
	fs := NewFileSystemWithFs(afero.NewMemMapFs(), "/home/test")
	return newDesktopAutostart(fs, "/home/test/.config/autostart/vncqrserver.desktop")
}

func TestDesktopAutostart_InstallRendersEntry(t *testing.T) {
	a := newTestDesktopAutostart()

	require.NoError(t, a.Install("/usr/local/bin/vncqr"))

	data, err := a.fs.ReadFile(a.entryPath)
	require.NoError(t, err)
	entry := string(data)

	assert.Contains(t, entry, "[Desktop Entry]")
	assert.Contains(t, entry, "Type=Application")
	assert.Contains(t, entry, "Name=VNCQRServer")
	assert.Contains(t, entry, "Exec=/usr/local/bin/vncqr run")
	assert.Contains(t, entry, "Path=/usr/local/bin")
	assert.Contains(t, entry, "X-GNOME-Autostart-enabled=true")
}

func TestDesktopAutostart_InstallThenStatus(t *testing.T) {
	a := newTestDesktopAutostart()
	assert.False(t, a.IsInstalled())

	require.NoError(t, a.Install("/usr/local/bin/vncqr"))
	assert.True(t, a.IsInstalled())
}

func TestDesktopAutostart_Uninstall(t *testing.T) {
	a := newTestDesktopAutostart()
	require.NoError(t, a.Install("/usr/local/bin/vncqr"))

	require.NoError(t, a.Uninstall())
	assert.False(t, a.IsInstalled())

	// Removing an absent entry is not an error.
	require.NoError(t, a.Uninstall())
}
