package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newListCmd builds `tt list`: a one-line-per-task summary.
func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every task declared by the recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, recipePath, err := c.newApp(cmd)
			if err != nil {
				return err
			}

			tasks, err := a.List(recipePath)
			if err != nil {
				return err
			}

			for _, t := range tasks {
				if t.Description != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", t.QualifiedName.String(), t.Description)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), t.QualifiedName.String())
				}
			}
			return nil
		},
	}
}
