package recipe

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
	"tasktree/internal/core/domain"
	"tasktree/internal/core/ports"
	"tasktree/internal/engine/graphbuilder"
)

// Recipe file names, checked in order, during upward discovery.
const (
	PrimaryName   = "tasktree.yaml"
	AlternateName = "tt.yaml"
)

// Loader implements ports.ConfigLoader by reading a root recipe file,
// resolving its imports, and handing the flattened task set to the
// Graph Builder.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Discover searches upward from cwd for tasktree.yaml or tt.yaml,
// preferring tasktree.yaml when both are present in the same directory.
func (l *Loader) Discover(cwd string) (string, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(domain.ErrRecipeNotFound, err)
	}

	for {
		for _, name := range []string{PrimaryName, AlternateName} {
			candidate := filepath.Join(dir, name)
			if _, statErr := os.Stat(candidate); statErr == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", zerr.With(domain.ErrRecipeNotFound, "cwd", cwd)
}

// Load reads the recipe at path (discovering one starting there if path
// is a directory), resolves its imports, and builds the task graph.
func (l *Loader) Load(path string) (*domain.Graph, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		discovered, discoverErr := l.Discover(path)
		if discoverErr != nil {
			return nil, discoverErr
		}
		path = discovered
	}

	root, err := parseFile(path)
	if err != nil {
		return nil, err
	}

	tasks, err := ResolveImports(root, path, l.Logger)
	if err != nil {
		return nil, err
	}

	return graphbuilder.Build(tasks)
}

// parseFile reads and unmarshals a single recipe file.
func parseFile(path string) (*RecipeFile, error) {
	// #nosec G304 -- path is produced by Discover's upward walk or passed explicitly by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(domain.ErrRecipeRead, err, "file", path)
	}

	var rf RecipeFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, zerr.Wrap(domain.ErrRecipeParse, err, "file", path)
	}

	return &rf, nil
}
