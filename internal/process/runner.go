package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const DefaultShell = "/bin/sh"

// ExitError reports a command that ran but exited with a non-zero status.
type ExitError struct {
	Command string
	Code    int
	err     error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with status %d", e.Command, e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.err
}

// Runner executes external commands synchronously. The child writes to the
// parent's stdout and stderr unless Stdout/Stderr are set; its output is never
// inspected. Stdin is only connected when set, otherwise the child reads from
// the null device.
type Runner struct {
	Shell  string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func NewRunner(shell string) *Runner {
	if shell == "" {
		shell = DefaultShell
	}
	return &Runner{Shell: shell}
}

// RunShell runs line through "<shell> -c".
func (r *Runner) RunShell(ctx context.Context, line string) error {
	shell := r.Shell
	if shell == "" {
		shell = DefaultShell
	}
	cmd := exec.CommandContext(ctx, shell, "-c", line)
	return r.run(cmd, line)
}

// Run executes name with args directly, without shell interpretation.
func (r *Runner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	return r.run(cmd, strings.Join(append([]string{name}, args...), " "))
}

func (r *Runner) run(cmd *exec.Cmd, display string) error {
	cmd.Stdin = r.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if r.Stdout != nil {
		cmd.Stdout = r.Stdout
	}
	if r.Stderr != nil {
		cmd.Stderr = r.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Command: display, Code: exitErr.ExitCode(), err: err}
	}
	return fmt.Errorf("failed to run %q: %w", display, err)
}
