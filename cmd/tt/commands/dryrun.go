package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newDryRunCmd builds `tt dry-run <task>`: the execution plan that a
// real run would follow, with the staleness reason for every reachable
// task, but nothing is executed.
func (c *CLI) newDryRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dry-run <task>",
		Short: "Show which tasks would run and why, without running them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawArgs, err := parseTaskArgs(args[1:])
			if err != nil {
				return err
			}

			a, recipePath, err := c.newApp(cmd)
			if err != nil {
				return err
			}

			order, statuses, err := a.Plan(recipePath, args[0], rawArgs)
			if err != nil {
				return err
			}

			byName := make(map[string]int, len(statuses))
			for i, s := range statuses {
				byName[s.Task.QualifiedName.String()] = i
			}

			out := cmd.OutOrStdout()
			for _, name := range order {
				idx, ok := byName[name]
				if !ok {
					continue
				}
				s := statuses[idx]
				if s.Stale {
					fmt.Fprintf(out, "%s: run (%s)\n", name, s.Reason)
				} else {
					fmt.Fprintf(out, "%s: skip (fresh)\n", name)
				}
			}
			return nil
		},
	}
}
