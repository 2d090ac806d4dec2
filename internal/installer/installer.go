// Package installer prepares the isolated Python runtime environment: it
// creates the venv, installs manifest dependencies, and conditionally
// builds the bundled VNC-client component.
package installer

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zlc1004/VNCClientServer/internal/domain"
	"github.com/zlc1004/VNCClientServer/internal/infra"
)

const markerVersion = 1

// EnvInstaller implements domain.Installer. All operations are idempotent:
// an existing environment is reused and a present lifecycle marker skips
// the dependency install entirely.
type EnvInstaller struct {
	paths  infra.Paths
	fs     *infra.FileSystem
	runner domain.CommandRunner
	marker domain.MarkerStore
	logger *zap.Logger
}

// NewEnvInstaller creates an installer for the given paths.
func NewEnvInstaller(
	paths infra.Paths,
	fs *infra.FileSystem,
	runner domain.CommandRunner,
	marker domain.MarkerStore,
	logger *zap.Logger,
) *EnvInstaller {
	return &EnvInstaller{
		paths:  paths,
		fs:     fs,
		runner: runner,
		marker: marker,
		logger: logger,
	}
}

// hostPython returns the system interpreter used to create the venv.
func hostPython() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

// EnsureEnvironment creates the venv if absent, reuses it otherwise.
func (i *EnvInstaller) EnsureEnvironment(ctx context.Context) error {
	if i.fs.IsDir(i.paths.EnvRoot) {
		i.logger.Info("reusing existing environment", zap.String("root", i.paths.EnvRoot))
		return nil
	}

	i.logger.Info("creating environment", zap.String("root", i.paths.EnvRoot))
	out, err := i.runner.Run(ctx, hostPython(), "-m", "venv", i.paths.EnvRoot)
	if err != nil {
		return &domain.EnvironmentCreationError{Path: i.paths.EnvRoot, Err: wrapOutput(err, out)}
	}
	return nil
}

// InstallDependencies installs manifest packages unless the lifecycle
// marker is present. The marker is written only after the install fully
// succeeds.
func (i *EnvInstaller) InstallDependencies(ctx context.Context) error {
	if i.marker.Exists() {
		i.logger.Info("dependencies already satisfied, skipping install")
		return nil
	}

	specs, err := i.readManifest()
	if err != nil {
		return &domain.DependencyInstallError{Manifest: i.paths.Manifest, Err: err}
	}
	i.logger.Info("installing dependencies",
		zap.String("manifest", i.paths.Manifest),
		zap.Int("packages", len(specs)))

	args := i.paths.PipArgs("install", "-r", i.paths.Manifest)
	out, err := i.runner.Run(ctx, i.paths.PythonBin(), args...)
	if err != nil {
		return &domain.DependencyInstallError{Manifest: i.paths.Manifest, Err: wrapOutput(err, out)}
	}

	m := domain.Marker{
		Version:     markerVersion,
		Manifest:    i.paths.Manifest,
		InstalledAt: time.Now().Unix(),
	}
	if err := i.marker.Write(m); err != nil {
		// Install succeeded but the sentinel didn't persist; the next run
		// will reinstall, which is safe. Not fatal.
		i.logger.Warn("failed to write lifecycle marker", zap.Error(err))
	}
	return nil
}

// readManifest parses the manifest: one package specifier per line, with
// blank lines and # comments ignored.
func (i *EnvInstaller) readManifest() ([]string, error) {
	data, err := i.fs.ReadFile(i.paths.Manifest)
	if err != nil {
		return nil, err
	}

	var specs []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		specs = append(specs, line)
	}
	return specs, nil
}

// wrapOutput attaches trailing command output to an exec error so fatal
// messages name the actual failure.
func wrapOutput(err error, out []byte) error {
	trimmed := bytes.TrimSpace(out)
	if len(trimmed) == 0 {
		return err
	}
	// Keep only the tail; pip output is long.
	const maxTail = 400
	if len(trimmed) > maxTail {
		trimmed = trimmed[len(trimmed)-maxTail:]
	}
	return &outputError{err: err, output: string(trimmed)}
}

type outputError struct {
	err    error
	output string
}

func (e *outputError) Error() string {
	return e.err.Error() + ": " + e.output
}

func (e *outputError) Unwrap() error { return e.err }

// Ensure EnvInstaller implements domain.Installer.
var _ domain.Installer = (*EnvInstaller)(nil)
