// Package graphbuilder validates a flat task mapping produced by the
// recipe loader and turns it into an immutable, topologically ordered
// domain.Graph.
package graphbuilder

import (
	"regexp"
	"slices"

	"go.trai.ch/zerr"
	"tasktree/internal/core/domain"
)

var placeholderRegex = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Build validates tasks (dangling dependencies, cycles, placeholder
// references), computes implicit inputs, and returns the resulting
// graph with its topological order populated.
func Build(tasks map[string]*domain.Task) (*domain.Graph, error) {
	g := domain.NewGraph()
	for _, t := range tasks {
		if err := g.AddTask(t); err != nil {
			return nil, err
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	for _, name := range g.TaskNames() {
		task, _ := g.GetTask(name)
		if err := validatePlaceholders(task); err != nil {
			return nil, err
		}
		task.ImplicitInputs = implicitInputs(g, task)
		g.SetTask(&task)
	}

	return g, nil
}

// implicitInputs computes the one-hop union, over direct dependencies, of
// each dependency's outputs (or explicit inputs when it has none).
func implicitInputs(g *domain.Graph, t domain.Task) []string {
	seen := make(map[string]bool)
	var inputs []string
	for _, depName := range t.Dependencies {
		dep, ok := g.GetTask(depName)
		if !ok {
			continue
		}
		source := dep.Outputs
		if len(source) == 0 {
			source = dep.ExplicitInputs
		}
		for _, path := range source {
			if !seen[path] {
				seen[path] = true
				inputs = append(inputs, path)
			}
		}
	}
	slices.Sort(inputs)
	return inputs
}

// validatePlaceholders ensures every {{name}} in the task's command
// references a declared parameter.
func validatePlaceholders(t domain.Task) error {
	for _, m := range placeholderRegex.FindAllStringSubmatch(t.Command, -1) {
		name := m[1]
		if _, ok := t.Parameter(name); !ok {
			return zerr.With(domain.ErrUnknownPlaceholder, "task", t.QualifiedName.String(), "placeholder", name)
		}
	}
	return nil
}
