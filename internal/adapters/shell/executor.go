// Package shell provides the shell executor adapter.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"go.trai.ch/zerr"
	"tasktree/internal/core/domain"
)

const shellPath = "/bin/sh"

var interruptSignal = os.Interrupt

// Executor implements ports.Executor by invoking each command through
// the platform shell, per spec §4.7 step 3.
type Executor struct{}

// NewExecutor creates a new Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Execute runs command via "sh -c" in workingDir with env as the full
// process environment, streaming combined stdout/stderr to out.
//
// On ctx cancellation the child is sent an interrupt and Execute waits
// up to a short grace period before the process is killed outright, so
// a task that traps SIGINT gets a chance to clean up.
func (e *Executor) Execute(ctx context.Context, command, workingDir string, env []string, out io.Writer) error {
	if command == "" {
		return nil
	}

	cmd := exec.CommandContext(ctx, shellPath, "-c", command) //nolint:gosec // recipe-authored command, run by design
	cmd.Dir = workingDir
	cmd.Env = env
	cmd.Stdout = out
	cmd.Stderr = out
	cmd.Cancel = func() error {
		return cmd.Process.Signal(interruptSignal)
	}
	cmd.WaitDelay = 5 * time.Second

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return zerr.Wrap(domain.ErrCancelled, err)
		}
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(domain.ErrTaskExecutionFailed, err), "exit_code", exitCode)
	}

	return nil
}
