package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tasktree/internal/core/domain"
)

// newTreeCmd builds `tt tree <task>`: the dependency tree reachable
// from task, annotated with each task's current freshness.
func (c *CLI) newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <task>",
		Short: "Show the dependency tree with freshness",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, recipePath, err := c.newApp(cmd)
			if err != nil {
				return err
			}

			_, statuses, err := a.Plan(recipePath, args[0], nil)
			if err != nil {
				return err
			}

			printTree(cmd, statuses)
			return nil
		},
	}
}

func printTree(cmd *cobra.Command, statuses []domain.TaskStatus) {
	out := cmd.OutOrStdout()
	for _, s := range statuses {
		freshness := "fresh"
		if s.Stale {
			freshness = fmt.Sprintf("stale (%s)", s.Reason)
		}
		fmt.Fprintf(out, "%s [%s]\n", s.Task.QualifiedName.String(), freshness)
		for _, dep := range s.Task.Dependencies {
			fmt.Fprintf(out, "  └─ %s\n", dep.String())
		}
	}
}
