package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"tasktree/internal/core/domain"
)

// runTask is the root command's RunE: `tt <task> [name=value...]`. With
// no arguments it falls back to printing usage, matching the teacher's
// "no targets" behaviour for its run subcommand.
func (c *CLI) runTask(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	target := args[0]
	rawArgs, err := parseTaskArgs(args[1:])
	if err != nil {
		return err
	}

	a, recipePath, err := c.newApp(cmd)
	if err != nil {
		return err
	}

	return a.Run(cmd.Context(), recipePath, target, rawArgs)
}

// parseTaskArgs splits each "name=value" positional argument into the
// map consumed by the engine's argument resolver.
func parseTaskArgs(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return nil, nil
	}

	result := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, zerr.With(domain.ErrArgCoercion, "argument", arg)
		}
		result[name] = value
	}
	return result, nil
}
