// Package resolver resolves a task's declared input/output glob patterns
// to concrete filesystem paths.
package resolver

import (
	"path/filepath"
	"slices"

	"go.trai.ch/zerr"
	"tasktree/internal/core/domain"
)

// Resolver implements ports.InputResolver using filepath.Glob.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveInputs resolves patterns against root and returns concrete,
// deduplicated, sorted paths. A pattern that matches nothing is kept
// verbatim in the result: a missing input is a conservative staleness
// signal (inputs_changed), not a fault. A malformed glob pattern is the
// only resolution failure this returns.
func (r *Resolver) ResolveInputs(patterns []string, root string) ([]string, error) {
	uniquePaths := make(map[string]bool, len(patterns))

	for _, pattern := range patterns {
		joined := filepath.Join(root, pattern)

		matches, err := filepath.Glob(joined)
		if err != nil {
			return nil, zerr.Wrap(domain.ErrGlobResolution, err, "pattern", joined)
		}

		if len(matches) == 0 {
			uniquePaths[joined] = true
			continue
		}
		for _, match := range matches {
			uniquePaths[match] = true
		}
	}

	result := make([]string, 0, len(uniquePaths))
	for path := range uniquePaths {
		result = append(result, path)
	}
	slices.Sort(result)

	return result, nil
}
