package infra

import (
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
)

const appDirName = "vncqr"

// Paths holds every filesystem location the bootstrap touches. It is an
// explicit, injectable value so tests can point everything at a temp or
// in-memory root instead of the user's real directories.
type Paths struct {
	// EnvRoot is the isolated Python environment directory.
	EnvRoot string
	// Manifest is the dependency manifest (one specifier per line).
	Manifest string
	// ComponentDir is the optional bundled VNC-client component source.
	ComponentDir string
	// MainEntry is the main application entry point handed off to after
	// a successful start decision.
	MainEntry string
	// DataDir holds the credential store and its key file.
	DataDir string
	// ConfigFile is the JSON settings/saved-servers file.
	ConfigFile string
	// WorkDir is where the prober's glob search starts.
	WorkDir string
}

// DefaultPaths resolves the standard locations: the environment and data
// dirs under the XDG data home, config under the XDG config home, and the
// manifest/component/main entry relative to the application source dir.
func DefaultPaths(sourceDir string) Paths {
	return Paths{
		EnvRoot:      filepath.Join(xdg.DataHome, appDirName, "env"),
		Manifest:     filepath.Join(sourceDir, "requirements.txt"),
		ComponentDir: filepath.Join(sourceDir, "pyVNC"),
		MainEntry:    filepath.Join(sourceDir, "main.py"),
		DataDir:      filepath.Join(xdg.DataHome, appDirName),
		ConfigFile:   filepath.Join(xdg.ConfigHome, appDirName, "config.json"),
		WorkDir:      sourceDir,
	}
}

// PythonBin returns the environment's interpreter path.
func (p Paths) PythonBin() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(p.EnvRoot, "Scripts", "python.exe")
	}
	return filepath.Join(p.EnvRoot, "bin", "python")
}

// PipArgs returns the argv for running pip inside the environment. pip is
// invoked as a module of the environment interpreter so the isolated
// site-packages is always the target.
func (p Paths) PipArgs(args ...string) []string {
	return append([]string{"-m", "pip"}, args...)
}

// MarkerPath returns the lifecycle marker location under the environment.
func (p Paths) MarkerPath() string {
	return filepath.Join(p.EnvRoot, ".deps_installed")
}
