// Package main is the entry point for the tt CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/grindlemire/graft"

	"tasktree/cmd/tt/commands"
	"tasktree/internal/app"
	"tasktree/internal/core/domain"
	_ "tasktree/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 1
	}

	cli := commands.New(components)
	if err := cli.Execute(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return exitCodeFor(err)
	}
	return 0
}

// exitCodeFor maps an error kind to the exit code taxonomy: 0 success,
// 1 recipe/config/arg error, 2 task execution failure, 130 cancelled
// by signal.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrCancelled):
		return 130
	case errors.Is(err, domain.ErrTaskExecutionFailed):
		return 2
	default:
		return 1
	}
}
