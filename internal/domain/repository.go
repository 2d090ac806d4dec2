package domain

import "context"

// CommandRunner executes external commands (python, pip, launchctl).
// Implementation: os/exec. Injected so installer and builder tests never
// spawn real processes.
type CommandRunner interface {
	// Run executes name with args and returns combined output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// PathResolver resolves executable names via the system search path.
// Implementation: exec.LookPath.
type PathResolver interface {
	// LookPath returns the absolute path of the named executable, or an
	// error if it is not on the search path.
	LookPath(name string) (string, error)
}

// Installer guarantees the isolated runtime environment exists and that
// manifest-listed packages are installed.
type Installer interface {
	// EnsureEnvironment creates the environment if absent, reuses it
	// otherwise. Failure is fatal for the bootstrap.
	EnsureEnvironment(ctx context.Context) error

	// InstallDependencies installs manifest packages unless the lifecycle
	// marker says they are already satisfied. Failure is fatal and must
	// not write the marker.
	InstallDependencies(ctx context.Context) error
}

// ComponentBuilder conditionally builds the bundled VNC-client component.
// Every failure here is non-fatal; the bootstrap continues in degraded
// mode.
type ComponentBuilder interface {
	// Build attempts the editable install plus smoke test. The returned
	// booleans report whether the component installed and whether the
	// smoke import passed.
	Build(ctx context.Context) (installed, smokePass bool)
}

// CapabilityProber produces the capability report for a platform.
type CapabilityProber interface {
	Probe() CapabilityReport
}

// MarkerStore persists the lifecycle marker under the environment
// directory.
type MarkerStore interface {
	// Exists reports whether the marker is present.
	Exists() bool

	// Write persists the marker. Called only after a fully successful
	// dependency install.
	Write(m Marker) error

	// Read returns the marker contents, or an error if absent/corrupt.
	Read() (*Marker, error)

	// Clear removes the marker (forces reinstall on next run).
	Clear() error
}

// ProcessManager handles OS process operations.
// Implementation: uses gopsutil for cross-platform support.
type ProcessManager interface {
	// FindByName returns PIDs of processes matching the pattern.
	FindByName(pattern string) ([]int, error)

	// Kill terminates a process by PID.
	Kill(pid int) error

	// IsRunning checks if a PID exists and is running.
	IsRunning(pid int) bool
}

// AutostartManager handles platform login-item registration for the
// application (LaunchAgent on macOS, Run registry key on Windows, XDG
// autostart entry on Linux).
type AutostartManager interface {
	// Install registers execPath to start at login.
	Install(execPath string) error

	// Uninstall removes the registration.
	Uninstall() error

	// IsInstalled checks if the registration is present.
	IsInstalled() bool
}

// KeyProvider abstracts the source of the credential-store encryption key.
type KeyProvider interface {
	// GetKey returns the encryption key bytes.
	GetKey() ([]byte, error)

	// StoreKey persists a new encryption key.
	StoreKey(key []byte) error

	// KeyExists checks if a key has been generated.
	KeyExists() bool
}

// CredentialStore provides encrypted persistent storage for saved-server
// passwords.
type CredentialStore interface {
	// GetPassword retrieves the password for a server key.
	GetPassword(serverKey string) (string, error)

	// SetPassword stores a password for a server key.
	SetPassword(serverKey, password string) error

	// DeletePassword removes the password for a server key.
	DeletePassword(serverKey string) error

	// Close releases resources (e.g., database connection).
	Close() error
}
