// Package staleness classifies every task reachable from a run target as
// fresh or stale, with a precise reason, per the decision table in
// spec §4.6. It is the single source of truth shared by --dry-run,
// --tree, and the runner's own execute-or-skip decision.
package staleness

import (
	"maps"
	"os"
	"slices"

	"tasktree/internal/core/domain"
	"tasktree/internal/core/ports"
)

// Analyzer evaluates task freshness against a graph and a pruned state.
type Analyzer struct {
	Resolver ports.InputResolver
}

// NewAnalyzer creates an Analyzer backed by the given input resolver.
func NewAnalyzer(resolver ports.InputResolver) *Analyzer {
	return &Analyzer{Resolver: resolver}
}

// Analyze returns a TaskStatus for every task reachable from target
// (target itself plus its transitive dependencies), in topological
// order. args supplies the coerced argument values for any parameterised
// task in that set, keyed by qualified name.
func (a *Analyzer) Analyze(
	g *domain.Graph, state domain.State, target domain.InternedString, args map[string][]domain.ResolvedArg,
) ([]domain.TaskStatus, error) {
	reachable, err := closure(g, target)
	if err != nil {
		return nil, err
	}

	taskHashesInState := make(map[string]bool, len(state))
	for _, entry := range state {
		taskHashesInState[entry.TaskHash] = true
	}

	statusByName := make(map[domain.InternedString]domain.TaskStatus, len(reachable))
	statuses := make([]domain.TaskStatus, 0, len(reachable))

	for _, name := range g.ExecutionOrder() {
		if !reachable[name] {
			continue
		}
		task, _ := g.GetTask(name)

		status, err := a.evaluate(task, state, taskHashesInState, statusByName, args[name.String()])
		if err != nil {
			return nil, err
		}

		statusByName[name] = status
		statuses = append(statuses, status)
	}

	return statuses, nil
}

func (a *Analyzer) evaluate(
	task domain.Task,
	state domain.State,
	taskHashesInState map[string]bool,
	statusByName map[domain.InternedString]domain.TaskStatus,
	resolvedArgs []domain.ResolvedArg,
) (domain.TaskStatus, error) {
	// Rule (a): declared outputs and explicit_inputs both empty.
	if len(task.Outputs) == 0 && len(task.ExplicitInputs) == 0 {
		return domain.TaskStatus{
			Task: task, CacheKey: cacheKeyFor(task, resolvedArgs),
			Stale: true, Reason: domain.ReasonNoOutputs, Args: resolvedArgs,
		}, nil
	}

	explicitPaths, err := a.Resolver.ResolveInputs(task.ExplicitInputs, task.WorkingDir)
	if err != nil {
		return domain.TaskStatus{}, err
	}
	implicitPaths, err := a.Resolver.ResolveInputs(task.ImplicitInputs, task.WorkingDir)
	if err != nil {
		return domain.TaskStatus{}, err
	}

	taskHash := domain.TaskFingerprint(task)
	argsHash := domain.ArgsFingerprint(resolvedArgs)
	cacheKey := domain.CacheKey(taskHash, argsHash)

	entry, ok := state[cacheKey]

	// Rule (b): no entry under this exact cache key.
	if !ok {
		reason := domain.ReasonNeverRun
		if taskHashesInState[taskHash] {
			reason = domain.ReasonArgsChanged
		}
		return domain.TaskStatus{
			Task: task, CacheKey: cacheKey, Stale: true, Reason: reason, Args: resolvedArgs,
		}, nil
	}

	// Rule (c): defensive, unreachable after Prune keeps only matching
	// task hashes, kept to make the decision table explicit in code.
	if entry.TaskHash != "" && entry.TaskHash != taskHash {
		return domain.TaskStatus{
			Task: task, CacheKey: cacheKey, Stale: true, Reason: domain.ReasonDefinitionChanged, Args: resolvedArgs,
		}, nil
	}

	// Rule (d): any current input newer than last_run, or missing, or any
	// input path recorded at the last run that no longer exists.
	allInputs := append(append([]string{}, explicitPaths...), implicitPaths...)
	changed := changedSince(allInputs, entry.LastRun)
	for _, p := range slices.Sorted(maps.Keys(entry.InputState)) {
		if _, statErr := os.Stat(p); statErr != nil && !slices.Contains(changed, p) {
			changed = append(changed, p)
		}
	}
	if len(changed) > 0 {
		return domain.TaskStatus{
			Task: task, CacheKey: cacheKey, Stale: true, Reason: domain.ReasonInputsChanged,
			Args: resolvedArgs, ChangedFiles: changed,
		}, nil
	}

	// Rule (e): any dependency stale propagates forward.
	for _, dep := range task.Dependencies {
		if depStatus, ok := statusByName[dep]; ok && depStatus.Stale {
			return domain.TaskStatus{
				Task: task, CacheKey: cacheKey, Stale: true, Reason: domain.ReasonDependencyTriggered, Args: resolvedArgs,
			}, nil
		}
	}

	// Rule (f): fresh.
	return domain.TaskStatus{
		Task: task, CacheKey: cacheKey, Stale: false, Reason: domain.ReasonFresh, Args: resolvedArgs,
	}, nil
}

// changedSince returns the subset of paths that are missing or whose
// mtime is strictly greater than lastRun.
func changedSince(paths []string, lastRun int64) []string {
	var changed []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			changed = append(changed, p)
			continue
		}
		if info.ModTime().Unix() > lastRun {
			changed = append(changed, p)
		}
	}
	return changed
}

func cacheKeyFor(task domain.Task, args []domain.ResolvedArg) string {
	return domain.CacheKey(domain.TaskFingerprint(task), domain.ArgsFingerprint(args))
}

// closure returns target and every task it transitively depends on.
func closure(g *domain.Graph, target domain.InternedString) (map[domain.InternedString]bool, error) {
	visited := make(map[domain.InternedString]bool)
	var visit func(name domain.InternedString) error
	visit = func(name domain.InternedString) error {
		if visited[name] {
			return nil
		}
		visited[name] = true
		task, ok := g.GetTask(name)
		if !ok {
			return nil
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
