//go:build !darwin && !windows && !linux

package infra

import (
	"fmt"
	"runtime"

	"github.com/zlc1004/VNCClientServer/internal/domain"
)

// unsupportedAutostart is the fallback for platforms without an autostart
// mechanism.
type unsupportedAutostart struct{}

// NewAutostartManager creates the platform autostart manager.
func NewAutostartManager(_ domain.CommandRunner) domain.AutostartManager {
	return unsupportedAutostart{}
}

func (unsupportedAutostart) Install(string) error {
	return fmt.Errorf("auto-startup not supported on %s", runtime.GOOS)
}

func (unsupportedAutostart) Uninstall() error {
	return fmt.Errorf("auto-startup not supported on %s", runtime.GOOS)
}

func (unsupportedAutostart) IsInstalled() bool { return false }
