package recipe_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"tasktree/internal/adapters/recipe"
	"tasktree/internal/core/domain"
	"tasktree/internal/core/ports/mocks"
)

func TestLoader_Load_WithImport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "build"), 0o750))

	rootContent := `
import:
  - file: build/tasks.yaml
    as: build
tasks:
  pkg:
    cmd: "echo pkg"
    deps: ["build.compile"]
`
	importedContent := `
tasks:
  compile:
    cmd: "echo compile"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasktree.yaml"), []byte(rootContent), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build", "tasks.yaml"), []byte(importedContent), 0o600))

	l := recipe.NewLoader(nil)
	g, err := l.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, g.TaskCount())

	_, ok := g.GetTask(domain.NewInternedString("build.compile"))
	assert.True(t, ok)
}

func TestLoader_Load_TransitiveImportRejected(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "build"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "other"), 0o750))

	rootContent := `
import:
  - file: build/tasks.yaml
    as: build
tasks:
  pkg:
    cmd: "echo pkg"
`
	importedContent := `
import:
  - file: ../other/tasks.yaml
    as: other
tasks:
  compile:
    cmd: "echo compile"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasktree.yaml"), []byte(rootContent), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build", "tasks.yaml"), []byte(importedContent), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other", "tasks.yaml"), []byte("tasks:\n  x:\n    cmd: echo\n"), 0o600))

	l := recipe.NewLoader(nil)
	_, err := l.Load(dir)
	assert.Error(t, err)
}

func TestLoader_Load_CrossFileReferenceRejected(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "build"), 0o750))

	rootContent := `
import:
  - file: build/tasks.yaml
    as: build
tasks:
  pkg:
    cmd: "echo pkg"
`
	importedContent := `
tasks:
  compile:
    cmd: "echo compile"
    deps: ["other.task"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasktree.yaml"), []byte(rootContent), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build", "tasks.yaml"), []byte(importedContent), 0o600))

	l := recipe.NewLoader(nil)
	_, err := l.Load(dir)
	assert.Error(t, err)
}

func TestLoader_Load_DuplicateDependencyRejected(t *testing.T) {
	dir := t.TempDir()

	rootContent := `
tasks:
  pkg:
    cmd: "echo pkg"
  build:
    cmd: "echo build"
    deps: ["pkg", "pkg"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasktree.yaml"), []byte(rootContent), 0o600))

	l := recipe.NewLoader(nil)
	_, err := l.Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateDependency)
}

func TestLoader_Load_DuplicateDependencyRejected_Imported(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "build"), 0o750))

	rootContent := `
import:
  - file: build/tasks.yaml
    as: build
tasks:
  pkg:
    cmd: "echo pkg"
`
	importedContent := `
tasks:
  a:
    cmd: "echo a"
  compile:
    cmd: "echo compile"
    deps: ["a", "a"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasktree.yaml"), []byte(rootContent), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build", "tasks.yaml"), []byte(importedContent), 0o600))

	l := recipe.NewLoader(nil)
	_, err := l.Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateDependency)
}

func TestResolveImports_WarnsOnEmptyRecipe(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn("recipe declares no tasks")

	root := &recipe.RecipeFile{Tasks: map[string]*recipe.TaskDTO{}}
	tasks, err := recipe.ResolveImports(root, "/tmp/tasktree.yaml", mockLogger)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestLoader_Load_NamespaceCollidesWithRootTask(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "build"), 0o750))

	rootContent := `
import:
  - file: build/tasks.yaml
    as: pkg
tasks:
  pkg:
    cmd: "echo pkg"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasktree.yaml"), []byte(rootContent), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build", "tasks.yaml"), []byte("tasks:\n  x:\n    cmd: echo\n"), 0o600))

	l := recipe.NewLoader(nil)
	_, err := l.Load(dir)
	assert.Error(t, err)
}
