package infra

import (
	"context"
	"os"
	"os/exec"

	"github.com/zlc1004/VNCClientServer/internal/domain"
)

// ExecRunner implements domain.CommandRunner using os/exec.
type ExecRunner struct{}

// NewExecRunner creates a new command runner.
func NewExecRunner() domain.CommandRunner {
	return &ExecRunner{}
}

// Run executes the command and returns its combined output. The command
// never gets stdin, so package managers can't hang on prompts.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = nil
	return cmd.CombinedOutput()
}

// LookPathResolver implements domain.PathResolver using exec.LookPath.
type LookPathResolver struct{}

// NewPathResolver creates a resolver backed by the real system search path.
func NewPathResolver() domain.PathResolver {
	return &LookPathResolver{}
}

// LookPath resolves an executable name via PATH.
func (r *LookPathResolver) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Handoff replaces stdio-attached execution of the main application: it
// runs the command in the foreground, wiring the child to our stdio, and
// blocks until it exits.
func Handoff(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Ensure implementations satisfy interfaces.
var _ domain.CommandRunner = (*ExecRunner)(nil)
var _ domain.PathResolver = (*LookPathResolver)(nil)
