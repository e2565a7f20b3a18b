// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"
)

// Executor defines the interface for executing a task's command as a
// child process.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs command in workingDir, with env as its full
	// environment ("KEY=VALUE" entries, inherited from the parent
	// process unchanged), streaming combined stdout/stderr to out.
	//
	// Execute forwards ctx cancellation to the child as an interrupt,
	// and returns a non-nil error if the process exits non-zero or
	// cannot be started.
	Execute(ctx context.Context, command, workingDir string, env []string, out io.Writer) error
}
