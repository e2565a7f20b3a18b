// Package app implements the application layer for tt: it wires the
// recipe loader, the Status API, and the Runner behind the handful of
// operations the CLI surface needs, independent of how that surface
// parses flags.
package app

import (
	"context"

	"go.trai.ch/zerr"

	"tasktree/internal/core/domain"
	"tasktree/internal/core/ports"
	"tasktree/internal/engine/engine"
	"tasktree/internal/engine/runner"
)

// App ties the recipe loader, the engine's Status API, and the Runner
// together.
type App struct {
	loader ports.ConfigLoader
	engine *engine.Engine
	runner *runner.Runner
}

// New creates an App instance.
func New(loader ports.ConfigLoader, eng *engine.Engine, run *runner.Runner) *App {
	return &App{loader: loader, engine: eng, runner: run}
}

// Run loads the recipe, plans the target, and executes every stale
// task reachable from it, in topological order.
func (a *App) Run(ctx context.Context, recipePath, target string, rawArgs map[string]string) error {
	graph, err := a.loader.Load(recipePath)
	if err != nil {
		return zerr.Wrap(err, "failed to load recipe")
	}

	_, statuses, state, err := a.engine.Plan(graph, target, rawArgs)
	if err != nil {
		return err
	}

	return a.runner.Run(ctx, state, statuses)
}

// Plan loads the recipe and returns the full topological order plus
// the statuses reachable from target, without executing anything. It
// backs `tt dry-run` and `tt tree`.
func (a *App) Plan(recipePath, target string, rawArgs map[string]string) ([]string, []domain.TaskStatus, error) {
	graph, err := a.loader.Load(recipePath)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load recipe")
	}

	order, statuses, _, err := a.engine.Plan(graph, target, rawArgs)
	if err != nil {
		return nil, nil, err
	}

	return order, statuses, nil
}

// List loads the recipe and returns every task, in lexicographic
// order, for `tt list`.
func (a *App) List(recipePath string) ([]domain.Task, error) {
	graph, err := a.loader.Load(recipePath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load recipe")
	}

	names := graph.TaskNames()
	tasks := make([]domain.Task, 0, len(names))
	for _, name := range names {
		task, _ := graph.GetTask(name)
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// Show loads the recipe and returns the fully normalised definition of
// a single task, for `tt show`.
func (a *App) Show(recipePath, target string) (domain.Task, error) {
	graph, err := a.loader.Load(recipePath)
	if err != nil {
		return domain.Task{}, zerr.Wrap(err, "failed to load recipe")
	}

	task, ok := graph.GetTask(domain.NewInternedString(target))
	if !ok {
		return domain.Task{}, zerr.With(domain.ErrTaskNotFound, "task", target)
	}
	return task, nil
}
