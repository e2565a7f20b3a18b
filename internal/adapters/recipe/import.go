package recipe

import (
	"path/filepath"
	"regexp"

	"go.trai.ch/zerr"
	"tasktree/internal/core/domain"
	"tasktree/internal/core/ports"
)

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ResolveImports merges a root recipe and its non-transitive imports into
// a single flat mapping of qualified task name to normalised domain.Task,
// per spec §4.2.
func ResolveImports(root *RecipeFile, rootPath string, logger ports.Logger) (map[string]*domain.Task, error) {
	rootDir := filepath.Dir(rootPath)

	rootTaskNames := make(map[string]bool, len(root.Tasks))
	for name := range root.Tasks {
		rootTaskNames[name] = true
	}

	namespaces := make(map[string]bool, len(root.Import))
	tasks := make(map[string]*domain.Task)

	for _, imp := range root.Import {
		if imp.As == "" || !identifierRegex.MatchString(imp.As) {
			return nil, zerr.With(domain.ErrNamespaceCollision, "namespace", imp.As, "file", imp.File)
		}
		if namespaces[imp.As] {
			return nil, zerr.With(domain.ErrDuplicateNamespace, "namespace", imp.As)
		}
		if rootTaskNames[imp.As] {
			return nil, zerr.With(domain.ErrNamespaceCollision, "namespace", imp.As)
		}
		namespaces[imp.As] = true

		importedPath := imp.File
		if !filepath.IsAbs(importedPath) {
			importedPath = filepath.Join(rootDir, imp.File)
		}

		imported, err := parseFile(importedPath)
		if err != nil {
			return nil, err
		}
		if len(imported.Import) > 0 {
			return nil, zerr.With(domain.ErrTransitiveImport, "file", importedPath)
		}

		importedDir := filepath.Dir(importedPath)
		for name, dto := range imported.Tasks {
			qualifiedName := imp.As + "." + name
			task, err := buildImportedTask(qualifiedName, dto, imp.As, importedDir)
			if err != nil {
				return nil, err
			}
			if _, exists := tasks[qualifiedName]; exists {
				return nil, zerr.With(domain.ErrTaskAlreadyExists, "task_name", qualifiedName)
			}
			tasks[qualifiedName] = task
		}
	}

	for name, dto := range root.Tasks {
		task, err := buildRootTask(name, dto, rootDir)
		if err != nil {
			return nil, err
		}
		if _, exists := tasks[name]; exists {
			return nil, zerr.With(domain.ErrTaskAlreadyExists, "task_name", name)
		}
		tasks[name] = task
	}

	if logger != nil && len(tasks) == 0 {
		logger.Warn("recipe declares no tasks")
	}

	return tasks, nil
}

func buildRootTask(name string, dto *TaskDTO, rootDir string) (*domain.Task, error) {
	params, err := parseParameters(dto.Parameters)
	if err != nil {
		return nil, zerr.Wrap(err, "task", name)
	}
	if err := checkNoDuplicateDeps(name, dto.Deps); err != nil {
		return nil, err
	}

	return &domain.Task{
		QualifiedName:  domain.NewInternedString(name),
		Description:    dto.Description,
		Command:        dto.Cmd,
		ExplicitInputs: dto.Inputs,
		Outputs:        dto.Outputs,
		Dependencies:   domain.InternStrings(dto.Deps),
		Parameters:     params,
		WorkingDir:     resolveWorkingDir(rootDir, dto.WorkingDir),
	}, nil
}

func buildImportedTask(qualifiedName string, dto *TaskDTO, namespace, importedDir string) (*domain.Task, error) {
	params, err := parseParameters(dto.Parameters)
	if err != nil {
		return nil, zerr.Wrap(err, "task", qualifiedName)
	}
	if err := checkNoDuplicateDeps(qualifiedName, dto.Deps); err != nil {
		return nil, err
	}

	deps := make([]string, len(dto.Deps))
	for i, dep := range dto.Deps {
		if containsDot(dep) {
			return nil, zerr.With(domain.ErrCrossFileReference, "task", qualifiedName, "dependency", dep)
		}
		deps[i] = namespace + "." + dep
	}

	return &domain.Task{
		QualifiedName:  domain.NewInternedString(qualifiedName),
		Description:    dto.Description,
		Command:        dto.Cmd,
		ExplicitInputs: dto.Inputs,
		Outputs:        dto.Outputs,
		Dependencies:   domain.InternStrings(deps),
		Parameters:     params,
		WorkingDir:     resolveWorkingDir(importedDir, dto.WorkingDir),
	}, nil
}

func resolveWorkingDir(baseDir, configured string) string {
	if configured == "" {
		return filepath.Clean(baseDir)
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Clean(filepath.Join(baseDir, configured))
}

// checkNoDuplicateDeps rejects a task's dependency list if any entry
// repeats, per spec §3's data-model invariant forbidding duplicates.
func checkNoDuplicateDeps(taskName string, deps []string) error {
	seen := make(map[string]bool, len(deps))
	for _, dep := range deps {
		if seen[dep] {
			return zerr.With(domain.ErrDuplicateDependency, "task", taskName, "dependency", dep)
		}
		seen[dep] = true
	}
	return nil
}

func containsDot(s string) bool {
	for _, r := range s {
		if r == '.' {
			return true
		}
	}
	return false
}
