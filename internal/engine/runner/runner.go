// Package runner executes the stale subset of a task graph in
// topological order. It is a plain sequential loop: spec §5 mandates
// single-threaded cooperative execution with zero intra-run
// parallelism, so there is no worker pool, results channel, or status
// mutex to maintain — a single goroutine has no need for any of them.
package runner

import (
	"context"
	"os"
	"strings"
	"time"

	"go.trai.ch/zerr"

	"tasktree/internal/core/domain"
	"tasktree/internal/core/ports"
)

// Runner executes tasks sequentially and keeps the persisted state in
// sync after every successful task.
type Runner struct {
	Executor ports.Executor
	Resolver ports.InputResolver
	Store    ports.StateStore
	Logger   ports.Logger
	Renderer ports.Renderer
}

// NewRunner creates a Runner wired to the given ports.
func NewRunner(
	executor ports.Executor,
	resolver ports.InputResolver,
	store ports.StateStore,
	logger ports.Logger,
	renderer ports.Renderer,
) *Runner {
	return &Runner{
		Executor: executor,
		Resolver: resolver,
		Store:    store,
		Logger:   logger,
		Renderer: renderer,
	}
}

// Run executes every stale task in statuses, in the order given
// (already topologically sorted by the Staleness Analyzer), and
// persists state after each success. It stops at the first failure or
// cancellation, leaving the state of prior successes intact.
func (r *Runner) Run(ctx context.Context, state domain.State, statuses []domain.TaskStatus) error {
	r.Renderer.Plan(statuses)

	for _, status := range statuses {
		name := status.Task.QualifiedName.String()

		if !status.Stale {
			r.Renderer.TaskSkipped(name)
			continue
		}

		if err := ctx.Err(); err != nil {
			wrapped := zerr.Wrap(domain.ErrCancelled, err)
			r.Renderer.TaskDone(name, wrapped)
			return wrapped
		}

		r.Renderer.TaskStart(name)

		startedAt := time.Now()
		command := substitute(status.Task.Command, status.Args)

		err := r.Executor.Execute(ctx, command, status.Task.WorkingDir, os.Environ(), &logWriter{logger: r.Logger})
		r.Renderer.TaskDone(name, err)

		if err != nil {
			if saveErr := r.Store.Save(state); saveErr != nil {
				r.Logger.Error(zerr.Wrap(saveErr, "failed to persist state after aborted run"))
			}
			return zerr.With(err, "task", name)
		}

		if err := r.recordSuccess(state, status, startedAt); err != nil {
			return err
		}
	}

	return nil
}

// recordSuccess captures the mtimes of every realised input path,
// writes the state entry keyed by the task's cache key, and persists
// the whole document atomically per spec §4.7 step 4.
func (r *Runner) recordSuccess(state domain.State, status domain.TaskStatus, startedAt time.Time) error {
	allPatterns := make([]string, 0, len(status.Task.ExplicitInputs)+len(status.Task.ImplicitInputs))
	allPatterns = append(allPatterns, status.Task.ExplicitInputs...)
	allPatterns = append(allPatterns, status.Task.ImplicitInputs...)

	resolved, err := r.Resolver.ResolveInputs(allPatterns, status.Task.WorkingDir)
	if err != nil {
		return zerr.With(err, "task", status.Task.QualifiedName.String())
	}

	inputState := make(map[string]int64, len(resolved))
	for _, path := range resolved {
		if info, statErr := os.Stat(path); statErr == nil {
			inputState[path] = info.ModTime().Unix()
		}
	}

	state[status.CacheKey] = domain.StateEntry{
		LastRun:    startedAt.Unix(),
		InputState: inputState,
		TaskHash:   domain.TaskFingerprint(status.Task),
	}

	if err := r.Store.Save(state); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to persist state"), "task", status.Task.QualifiedName.String())
	}

	return nil
}

// substitute replaces every declared "{{name}}" placeholder in command
// with its coerced argument value. Unknown placeholders were already
// rejected by the Graph Builder, so a plain strings.NewReplacer over
// the resolved arguments is sufficient.
func substitute(command string, args []domain.ResolvedArg) string {
	if len(args) == 0 {
		return command
	}
	pairs := make([]string, 0, len(args)*2)
	for _, a := range args {
		pairs = append(pairs, "{{"+a.Name+"}}", a.Value)
	}
	return strings.NewReplacer(pairs...).Replace(command)
}

// logWriter adapts a ports.Logger into an io.Writer, splitting on
// newlines so multi-line process output becomes one log line per line
// of output rather than one call per chunk.
type logWriter struct {
	logger ports.Logger
}

func (w *logWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimSuffix(string(p), "\n"), "\n") {
		if line != "" {
			w.logger.Info(line)
		}
	}
	return len(p), nil
}
