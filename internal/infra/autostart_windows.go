//go:build windows

package infra

import (
	"fmt"

	"golang.org/x/sys/windows/registry"

	"github.com/zlc1004/VNCClientServer/internal/domain"
)

const runKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`

// RegistryAutostart implements domain.AutostartManager with an HKCU Run
// registry value.
type RegistryAutostart struct{}

// NewAutostartManager creates the platform autostart manager. The runner
// is unused on Windows; registry access is direct.
func NewAutostartManager(_ domain.CommandRunner) domain.AutostartManager {
	return &RegistryAutostart{}
}

// Install sets the Run value to the executable path.
func (a *RegistryAutostart) Install(execPath string) error {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open Run key: %w", err)
	}
	defer key.Close()

	if err := key.SetStringValue(autostartAppName, fmt.Sprintf(`"%s" run`, execPath)); err != nil {
		return fmt.Errorf("failed to set Run value: %w", err)
	}
	return nil
}

// Uninstall removes the Run value. A missing value is not an error.
func (a *RegistryAutostart) Uninstall() error {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open Run key: %w", err)
	}
	defer key.Close()

	err = key.DeleteValue(autostartAppName)
	if err == registry.ErrNotExist {
		return nil
	}
	return err
}

// IsInstalled checks if the Run value exists.
func (a *RegistryAutostart) IsInstalled() bool {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer key.Close()

	_, _, err = key.GetStringValue(autostartAppName)
	return err == nil
}

var _ domain.AutostartManager = (*RegistryAutostart)(nil)
