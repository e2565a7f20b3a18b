// Package engine exposes the single read path shared by every
// consumer that needs to know what a run would do: `tt tree`,
// `tt dry-run`, and the Runner itself before it executes anything.
// No consumer recomputes staleness independently.
package engine

import (
	"go.trai.ch/zerr"

	"tasktree/internal/adapters/statestore"
	"tasktree/internal/core/domain"
	"tasktree/internal/core/ports"
	"tasktree/internal/engine/staleness"
)

// Engine wires the State Store and Staleness Analyzer behind one
// read-only facade.
type Engine struct {
	Store    ports.StateStore
	Analyzer *staleness.Analyzer
}

// New creates an Engine backed by the given state store and input
// resolver.
func New(store ports.StateStore, resolver ports.InputResolver) *Engine {
	return &Engine{
		Store:    store,
		Analyzer: staleness.NewAnalyzer(resolver),
	}
}

// Plan resolves rawArgs against target's declared parameters (and
// every other reachable task's declared defaults), loads and prunes
// the persisted state against the current graph, and returns the full
// topological order, the reachable subset's statuses, and the pruned
// state so a caller can pass it straight to Runner.Run. A state file
// that cannot be read is replaced by an empty state; no warning is
// logged.
func (e *Engine) Plan(
	g *domain.Graph, target string, rawArgs map[string]string,
) (order []string, statuses []domain.TaskStatus, state domain.State, err error) {
	targetName := domain.NewInternedString(target)
	if _, ok := g.GetTask(targetName); !ok {
		return nil, nil, nil, zerr.With(domain.ErrTaskNotFound, "task", target)
	}

	args, err := e.resolveArgs(g, targetName, rawArgs)
	if err != nil {
		return nil, nil, nil, err
	}

	loaded, loadErr := e.Store.Load()
	if loadErr != nil {
		loaded = domain.State{}
	}

	validHashes := make(map[string]bool, g.TaskCount())
	for _, name := range g.TaskNames() {
		task, _ := g.GetTask(name)
		validHashes[domain.TaskFingerprint(task)] = true
	}
	pruned := statestore.Prune(loaded, validHashes)

	statuses, err = e.Analyzer.Analyze(g, pruned, targetName, args)
	if err != nil {
		return nil, nil, nil, err
	}

	order = make([]string, 0, len(g.ExecutionOrder()))
	for _, name := range g.ExecutionOrder() {
		order = append(order, name.String())
	}

	return order, statuses, pruned, nil
}

// resolveArgs coerces rawArgs against target's declared parameters,
// and every other task reachable from target against its own declared
// defaults (a dependency has no other source of argument values: the
// CLI surface only accepts arguments for the invoked task).
func (e *Engine) resolveArgs(
	g *domain.Graph, target domain.InternedString, rawArgs map[string]string,
) (map[string][]domain.ResolvedArg, error) {
	result := make(map[string][]domain.ResolvedArg)

	reachable, err := reachableClosure(g, target)
	if err != nil {
		return nil, err
	}

	for name := range reachable {
		task, _ := g.GetTask(name)
		if !task.HasParameters() {
			continue
		}

		source := map[string]string{}
		if name == target {
			source = rawArgs
		}

		resolved, err := coerceTaskArgs(task, source)
		if err != nil {
			return nil, err
		}
		result[name.String()] = resolved
	}

	return result, nil
}

func coerceTaskArgs(task domain.Task, raw map[string]string) ([]domain.ResolvedArg, error) {
	resolved := make([]domain.ResolvedArg, 0, len(task.Parameters))
	for _, p := range task.Parameters {
		value, ok := raw[p.Name]
		if !ok {
			if p.Default == nil {
				return nil, zerr.With(domain.ErrMissingArgument, "task", task.QualifiedName.String(), "parameter", p.Name)
			}
			value = *p.Default
		}

		coerced, err := domain.CoerceArgument(p, value)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, domain.ResolvedArg{Name: p.Name, Type: p.Type, Value: coerced})
	}

	for name := range raw {
		if _, ok := task.Parameter(name); !ok {
			return nil, zerr.With(domain.ErrUnknownParameter, "task", task.QualifiedName.String(), "parameter", name)
		}
	}

	return resolved, nil
}

func reachableClosure(g *domain.Graph, target domain.InternedString) (map[domain.InternedString]bool, error) {
	visited := make(map[domain.InternedString]bool)
	var visit func(name domain.InternedString) error
	visit = func(name domain.InternedString) error {
		if visited[name] {
			return nil
		}
		visited[name] = true
		task, ok := g.GetTask(name)
		if !ok {
			return zerr.With(domain.ErrTaskNotFound, "task", name.String())
		}
		for _, dep := range task.Dependencies {
			if err := visit(dep); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(target); err != nil {
		return nil, err
	}
	return visited, nil
}
