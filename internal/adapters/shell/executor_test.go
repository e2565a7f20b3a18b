package shell_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktree/internal/adapters/shell"
)

func TestExecutor_Execute_Success(t *testing.T) {
	e := shell.NewExecutor()
	var out bytes.Buffer

	err := e.Execute(context.Background(), "echo hello", t.TempDir(), nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out.String())
}

func TestExecutor_Execute_NonZeroExit(t *testing.T) {
	e := shell.NewExecutor()
	var out bytes.Buffer

	err := e.Execute(context.Background(), "exit 3", t.TempDir(), nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task execution failed")
}

func TestExecutor_Execute_EmptyCommand(t *testing.T) {
	e := shell.NewExecutor()
	err := e.Execute(context.Background(), "", t.TempDir(), nil, nil)
	require.NoError(t, err)
}

func TestExecutor_Execute_WorkingDir(t *testing.T) {
	e := shell.NewExecutor()
	dir := t.TempDir()
	var out bytes.Buffer

	err := e.Execute(context.Background(), "pwd", dir, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, dir, strings.TrimSpace(out.String()))
}

func TestExecutor_Execute_InheritsEnv(t *testing.T) {
	e := shell.NewExecutor()
	var out bytes.Buffer

	err := e.Execute(context.Background(), "echo $GREETING", t.TempDir(), []string{"GREETING=hi"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "hi\n", out.String())
}

func TestExecutor_Execute_CancelledContext(t *testing.T) {
	e := shell.NewExecutor()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := e.Execute(ctx, "sleep 5", t.TempDir(), nil, nil)
	require.Error(t, err)
}
