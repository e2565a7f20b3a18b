package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktree/internal/adapters/resolver"
	"tasktree/internal/adapters/statestore"
	"tasktree/internal/core/domain"
	"tasktree/internal/engine/engine"
)

func buildGreetGraph(t *testing.T, dir string) *domain.Graph {
	t.Helper()
	g := domain.NewGraph()

	greet := &domain.Task{
		QualifiedName: domain.NewInternedString("greet"),
		Command:       "echo hello {{name}}",
		Outputs:       []string{"out.txt"},
		Parameters:    []domain.Parameter{{Name: "name", Type: domain.ParamString}},
		WorkingDir:    dir,
	}
	require.NoError(t, g.AddTask(greet))
	require.NoError(t, g.Validate())
	return g
}

func TestEngine_Plan_ResolvesTargetArgs(t *testing.T) {
	dir := t.TempDir()
	g := buildGreetGraph(t, dir)
	e := engine.New(statestore.NewFileStore(dir), resolver.NewResolver())

	order, statuses, state, err := e.Plan(g, "greet", map[string]string{"name": "bob"})
	require.NoError(t, err)
	assert.Equal(t, []string{"greet"}, order)
	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].Stale)
	assert.Equal(t, domain.ReasonNeverRun, statuses[0].Reason)
	assert.Empty(t, state)
}

func TestEngine_Plan_MissingRequiredArgument(t *testing.T) {
	dir := t.TempDir()
	g := buildGreetGraph(t, dir)
	e := engine.New(statestore.NewFileStore(dir), resolver.NewResolver())

	_, _, _, err := e.Plan(g, "greet", map[string]string{})
	assert.Error(t, err)
}

func TestEngine_Plan_UnknownArgument(t *testing.T) {
	dir := t.TempDir()
	g := buildGreetGraph(t, dir)
	e := engine.New(statestore.NewFileStore(dir), resolver.NewResolver())

	_, _, _, err := e.Plan(g, "greet", map[string]string{"name": "bob", "bogus": "x"})
	assert.Error(t, err)
}

func TestEngine_Plan_UnknownTarget(t *testing.T) {
	dir := t.TempDir()
	g := buildGreetGraph(t, dir)
	e := engine.New(statestore.NewFileStore(dir), resolver.NewResolver())

	_, _, _, err := e.Plan(g, "does-not-exist", nil)
	assert.Error(t, err)
}

func TestEngine_Plan_DependencyUsesDeclaredDefault(t *testing.T) {
	dir := t.TempDir()
	g := domain.NewGraph()

	def := "dev"
	build := &domain.Task{
		QualifiedName: domain.NewInternedString("build"),
		Command:       "echo building {{env}}",
		Outputs:       []string{"bin/out"},
		Parameters:    []domain.Parameter{{Name: "env", Type: domain.ParamString, Default: &def}},
		WorkingDir:    dir,
	}
	require.NoError(t, g.AddTask(build))

	run := &domain.Task{
		QualifiedName: domain.NewInternedString("run"),
		Command:       "./bin/out",
		Dependencies:  []domain.InternedString{domain.NewInternedString("build")},
		WorkingDir:    dir,
	}
	require.NoError(t, g.AddTask(run))
	require.NoError(t, g.Validate())

	e := engine.New(statestore.NewFileStore(dir), resolver.NewResolver())
	_, statuses, _, err := e.Plan(g, "run", nil)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
}
