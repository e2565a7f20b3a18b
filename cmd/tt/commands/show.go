package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tasktree/internal/core/domain"
)

// internedStrings renders a dependency list as plain qualified names.
func internedStrings(names []domain.InternedString) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n.String()
	}
	return out
}

// newShowCmd builds `tt show <task>`: the fully normalised definition
// of a single task, after imports and implicit-input inheritance have
// been resolved.
func (c *CLI) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <task>",
		Short: "Display the normalised definition of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, recipePath, err := c.newApp(cmd)
			if err != nil {
				return err
			}

			task, err := a.Show(recipePath, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "task:        %s\n", task.QualifiedName.String())
			if task.Description != "" {
				fmt.Fprintf(out, "description: %s\n", task.Description)
			}
			fmt.Fprintf(out, "command:     %s\n", task.Command)
			fmt.Fprintf(out, "working_dir: %s\n", task.WorkingDir)
			fmt.Fprintf(out, "deps:        %v\n", internedStrings(task.Dependencies))
			fmt.Fprintf(out, "inputs:      %v\n", task.ExplicitInputs)
			fmt.Fprintf(out, "implicit:    %v\n", task.ImplicitInputs)
			fmt.Fprintf(out, "outputs:     %v\n", task.Outputs)
			for _, p := range task.Parameters {
				def := "(required)"
				if p.Default != nil {
					def = *p.Default
				}
				fmt.Fprintf(out, "param:       %s:%s=%s\n", p.Name, p.Type, def)
			}
			return nil
		},
	}
}
