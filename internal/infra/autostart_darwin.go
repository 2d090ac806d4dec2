//go:build darwin

package infra

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/zlc1004/VNCClientServer/internal/domain"
)

// LaunchAgent plist: start at login, don't resurrect on exit.
const launchAgentTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>{{.Label}}</string>

    <key>ProgramArguments</key>
    <array>
        <string>{{.ExecutablePath}}</string>
        <string>run</string>
    </array>

    <key>RunAtLoad</key>
    <true/>

    <key>KeepAlive</key>
    <false/>

    <key>WorkingDirectory</key>
    <string>{{.WorkingDir}}</string>

    <key>StandardOutPath</key>
    <string>/tmp/vncqrserver.log</string>

    <key>StandardErrorPath</key>
    <string>/tmp/vncqrserver.error.log</string>
</dict>
</plist>`

type plistConfig struct {
	Label          string
	ExecutablePath string
	WorkingDir     string
}

// LaunchdAutostart implements domain.AutostartManager with a user
// LaunchAgent under ~/Library/LaunchAgents.
type LaunchdAutostart struct {
	fs        *FileSystem
	runner    domain.CommandRunner
	plistPath string
}

// NewAutostartManager creates the platform autostart manager.
func NewAutostartManager(runner domain.CommandRunner) domain.AutostartManager {
	return newLaunchdAutostart(NewFileSystem(), runner)
}

func newLaunchdAutostart(fs *FileSystem, runner domain.CommandRunner) *LaunchdAutostart {
	return &LaunchdAutostart{
		fs:        fs,
		runner:    runner,
		plistPath: fs.ExpandHome(filepath.Join("~", "Library", "LaunchAgents", launchdLabel+".plist")),
	}
}

// renderPlist produces the LaunchAgent document for the executable.
func renderPlist(execPath string) ([]byte, error) {
	tmpl, err := template.New("plist").Parse(launchAgentTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse plist template: %w", err)
	}
	var buf bytes.Buffer
	cfg := plistConfig{
		Label:          launchdLabel,
		ExecutablePath: execPath,
		WorkingDir:     filepath.Dir(execPath),
	}
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return nil, fmt.Errorf("failed to render plist: %w", err)
	}
	return buf.Bytes(), nil
}

// Install writes the plist and loads it with launchctl.
func (a *LaunchdAutostart) Install(execPath string) error {
	plist, err := renderPlist(execPath)
	if err != nil {
		return err
	}
	if err := a.fs.WriteFile(a.plistPath, plist, 0o644); err != nil {
		return fmt.Errorf("failed to write plist: %w", err)
	}

	if out, err := a.runner.Run(context.Background(), "launchctl", "load", a.plistPath); err != nil {
		return fmt.Errorf("launchctl load failed: %w (%s)", err, bytes.TrimSpace(out))
	}
	return nil
}

// Uninstall unloads the LaunchAgent and removes the plist.
func (a *LaunchdAutostart) Uninstall() error {
	if !a.fs.Exists(a.plistPath) {
		return nil
	}
	// Unload errors are ignored: the agent may not be loaded.
	_, _ = a.runner.Run(context.Background(), "launchctl", "unload", a.plistPath)
	if err := a.fs.Remove(a.plistPath); err != nil {
		return fmt.Errorf("failed to remove plist: %w", err)
	}
	return nil
}

// IsInstalled asks launchctl whether the agent is loaded, falling back to
// a plist existence check.
func (a *LaunchdAutostart) IsInstalled() bool {
	if _, err := a.runner.Run(context.Background(), "launchctl", "list", launchdLabel); err == nil {
		return true
	}
	return a.fs.Exists(a.plistPath)
}

var _ domain.AutostartManager = (*LaunchdAutostart)(nil)
