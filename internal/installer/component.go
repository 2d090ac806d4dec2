package installer

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/zlc1004/VNCClientServer/internal/domain"
	"github.com/zlc1004/VNCClientServer/internal/infra"
)

// componentModule is the import name smoke-tested after install.
const componentModule = "pyVNC"

// ComponentBuilder implements domain.ComponentBuilder for the bundled
// VNC-client component. Nothing here is fatal: the application must still
// start in QR-only mode when any step fails.
type ComponentBuilder struct {
	paths  infra.Paths
	fs     *infra.FileSystem
	runner domain.CommandRunner
	logger *zap.Logger
}

// NewComponentBuilder creates a builder for the optional component.
func NewComponentBuilder(
	paths infra.Paths,
	fs *infra.FileSystem,
	runner domain.CommandRunner,
	logger *zap.Logger,
) *ComponentBuilder {
	return &ComponentBuilder{paths: paths, fs: fs, runner: runner, logger: logger}
}

// Build attempts the editable install plus smoke test. The presence of the
// component source dir with a build descriptor is the sole trigger; when
// absent, Build is a no-op reporting (false, false).
func (b *ComponentBuilder) Build(ctx context.Context) (installed, smokePass bool) {
	descriptor := filepath.Join(b.paths.ComponentDir, "setup.py")
	if !b.fs.Exists(descriptor) {
		b.logger.Info("optional component source not present, skipping",
			zap.String("dir", b.paths.ComponentDir))
		return false, false
	}

	python := b.paths.PythonBin()

	// Native numeric dependency upgrade. Failure is a warning only.
	if out, err := b.runner.Run(ctx, python, b.paths.PipArgs("install", "--upgrade", "numpy")...); err != nil {
		b.logger.Warn("numpy upgrade failed, continuing",
			zap.Error(err),
			zap.ByteString("output", tail(out)))
	}

	// Editable install. Failure downgrades to QR-only mode.
	if out, err := b.runner.Run(ctx, python, b.paths.PipArgs("install", "-e", b.paths.ComponentDir)...); err != nil {
		b.logger.Warn("optional component install failed, continuing in QR-only mode",
			zap.String("dir", b.paths.ComponentDir),
			zap.Error(err),
			zap.ByteString("output", tail(out)))
		return false, false
	}

	// Smoke import. Failure only downgrades the advertised capability.
	if out, err := b.runner.Run(ctx, python, "-c", "import "+componentModule); err != nil {
		b.logger.Warn("optional component smoke test failed",
			zap.String("module", componentModule),
			zap.Error(err),
			zap.ByteString("output", tail(out)))
		return true, false
	}

	b.logger.Info("optional component installed", zap.String("dir", b.paths.ComponentDir))
	return true, true
}

func tail(out []byte) []byte {
	const maxTail = 400
	if len(out) > maxTail {
		return out[len(out)-maxTail:]
	}
	return out
}

// Ensure ComponentBuilder implements domain.ComponentBuilder.
var _ domain.ComponentBuilder = (*ComponentBuilder)(nil)
