package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktree/internal/adapters/recipe"
	"tasktree/internal/adapters/render"
	"tasktree/internal/adapters/resolver"
	"tasktree/internal/adapters/shell"
	"tasktree/internal/adapters/statestore"
	"tasktree/internal/app"
	"tasktree/internal/engine/engine"
	"tasktree/internal/engine/runner"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

func writeRecipe(t *testing.T, dir, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasktree.yaml"), []byte(contents), 0o600))
}

func newApp(dir string) *app.App {
	loader := recipe.NewLoader(nil)
	res := resolver.NewResolver()
	store := statestore.NewFileStore(dir)
	eng := engine.New(store, res)
	run := runner.NewRunner(shell.NewExecutor(), res, store, nopLogger{}, render.NewRenderer(nil))
	return app.New(loader, eng, run)
}

func TestApp_Run_ExecutesTaskAndPersistsState(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, `
tasks:
  build:
    cmd: "touch bin-out"
    outputs: ["bin-out"]
`)

	a := newApp(dir)
	err := a.Run(context.Background(), dir, "build", nil)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "bin-out"))
	assert.FileExists(t, filepath.Join(dir, ".tasktree-state"))
}

func TestApp_Run_SkipsSecondInvocationWhenFresh(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, `
tasks:
  build:
    cmd: "echo building >> log.txt"
    outputs: ["bin-out"]
`)

	a := newApp(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bin-out"), nil, 0o600))
	require.NoError(t, a.Run(context.Background(), dir, "build", nil))

	_, statuses, err := a.Plan(dir, "build", nil)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.False(t, statuses[0].Stale)
}

func TestApp_Plan_ReturnsOrderAndStatuses(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, `
tasks:
  compile:
    cmd: "echo compile"
    outputs: ["bin/out"]
  run:
    cmd: "echo run"
    deps: ["compile"]
`)

	a := newApp(dir)
	order, statuses, err := a.Plan(dir, "run", nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"compile", "run"}, order)
	assert.Len(t, statuses, 2)
}

func TestApp_List_ReturnsAllTasks(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, `
tasks:
  a:
    cmd: "echo a"
  b:
    cmd: "echo b"
`)

	a := newApp(dir)
	tasks, err := a.List(dir)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestApp_Show_ReturnsNormalisedTask(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, `
tasks:
  greet:
    cmd: "echo hi {{name}}"
    parameters: ["name:str"]
`)

	a := newApp(dir)
	task, err := a.Show(dir, "greet")
	require.NoError(t, err)
	assert.Equal(t, "greet", task.QualifiedName.String())
	require.Len(t, task.Parameters, 1)
	assert.Equal(t, "name", task.Parameters[0].Name)
}

func TestApp_Show_UnknownTask(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, "tasks:\n  a:\n    cmd: echo a\n")

	a := newApp(dir)
	_, err := a.Show(dir, "missing")
	assert.Error(t, err)
}

func TestApp_Run_UnknownTargetReturnsError(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, "tasks:\n  a:\n    cmd: echo a\n")

	a := newApp(dir)
	err := a.Run(context.Background(), dir, "missing", nil)
	assert.Error(t, err)
}

func TestApp_Run_AbortsOnTaskFailure(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, "tasks:\n  a:\n    cmd: exit 1\n")

	a := newApp(dir)
	err := a.Run(context.Background(), dir, "a", nil)
	assert.Error(t, err)

	state, loadErr := statestore.NewFileStore(dir).Load()
	require.NoError(t, loadErr)
	assert.Empty(t, state)
}
