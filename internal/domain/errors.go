package domain

import "fmt"

// EnvironmentCreationError means the isolated runtime environment could
// not be created. Unrecoverable: the bootstrap must abort.
type EnvironmentCreationError struct {
	Path string
	Err  error
}

func (e *EnvironmentCreationError) Error() string {
	return fmt.Sprintf("failed to create environment at %s: %v", e.Path, e.Err)
}

func (e *EnvironmentCreationError) Unwrap() error { return e.Err }

// Hint returns the user-facing remediation hint for this failure.
func (e *EnvironmentCreationError) Hint() string {
	return "install Python 3.8+ and make sure 'python3' is on your PATH"
}

// DependencyInstallError means manifest packages could not be installed.
// Unrecoverable: the bootstrap must abort and the lifecycle marker must
// not be written.
type DependencyInstallError struct {
	Manifest string
	Err      error
}

func (e *DependencyInstallError) Error() string {
	return fmt.Sprintf("failed to install dependencies from %s: %v", e.Manifest, e.Err)
}

func (e *DependencyInstallError) Unwrap() error { return e.Err }

// Hint returns the user-facing remediation hint for this failure.
func (e *DependencyInstallError) Hint() string {
	return "check your network connection and that pip works inside the environment"
}

// Hinter is implemented by fatal errors that carry a remediation hint.
type Hinter interface {
	Hint() string
}
