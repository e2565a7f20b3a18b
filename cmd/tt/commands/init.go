package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"tasktree/internal/adapters/recipe"
	"tasktree/internal/core/domain"
)

const blankRecipe = `tasks:
  build:
    cmd: "echo build me"
`

// newInitCmd builds `tt init`: writes a blank recipe into the current
// directory (or --recipe's directory, if given) unless one already
// exists there.
func (c *CLI) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a blank recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("recipe")
			if dir == "" {
				dir = "."
			}

			path := filepath.Join(dir, recipe.PrimaryName)
			if _, err := os.Stat(path); err == nil {
				return zerr.With(domain.ErrRecipeAlreadyExists, "file", path)
			}

			if err := os.WriteFile(path, []byte(blankRecipe), 0o600); err != nil {
				return zerr.Wrap(domain.ErrRecipeRead, err, "file", path)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}
