// Package commands implements the CLI commands for the tt task runner.
package commands

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tasktree/internal/adapters/statestore"
	"tasktree/internal/app"
	"tasktree/internal/engine/engine"
	"tasktree/internal/engine/runner"
)

// CLI represents the command line interface for tt.
type CLI struct {
	adapters *app.Components
	rootCmd  *cobra.Command
}

// New creates a new CLI instance wired to the given, Graft-resolved
// components.
func New(a *app.Components) *CLI {
	rootCmd := &cobra.Command{
		Use:           "tt <task> [args...]",
		Short:         "A task runner with per-task incremental freshness",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringP("recipe", "r", "", "path to the recipe file or its directory (default: discover upward from the current directory)")

	c := &CLI{adapters: a, rootCmd: rootCmd}
	rootCmd.RunE = c.runTask

	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newTreeCmd())
	rootCmd.AddCommand(c.newDryRunCmd())
	rootCmd.AddCommand(c.newInitCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// newApp resolves the recipe path (honoring --recipe if set, otherwise
// discovering from the current directory), builds the state store,
// engine and runner rooted at that recipe's directory, and returns a
// ready-to-use App along with the resolved recipe path.
func (c *CLI) newApp(cmd *cobra.Command) (*app.App, string, error) {
	recipeFlag, _ := cmd.Flags().GetString("recipe")
	if recipeFlag == "" {
		recipeFlag = "."
	}

	recipePath, rootDir, err := c.resolveRecipe(recipeFlag)
	if err != nil {
		return nil, "", err
	}

	store := statestore.NewFileStore(rootDir)
	eng := engine.New(store, c.adapters.Resolver)
	run := runner.NewRunner(c.adapters.Executor, c.adapters.Resolver, store, c.adapters.Logger, c.adapters.Renderer)

	return app.New(c.adapters.Loader, eng, run), recipePath, nil
}

// resolveRecipe mirrors the Config Loader's own discovery rule so the
// state store can be rooted at the same directory the loader will read
// the recipe from, without the Loader needing to expose that path.
func (c *CLI) resolveRecipe(path string) (recipePath, rootDir string, err error) {
	info, statErr := os.Stat(path)
	if statErr != nil || info.IsDir() {
		discovered, discoverErr := c.adapters.Loader.Discover(path)
		if discoverErr != nil {
			return "", "", discoverErr
		}
		return discovered, filepath.Dir(discovered), nil
	}
	return path, filepath.Dir(path), nil
}
